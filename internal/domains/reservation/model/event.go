package model

import "time"

const (
	EventEnquiry       = "reservation.enquiry"
	EventCreated       = "reservation.created"
	EventRoomAssigned  = "reservation.room_assigned"
	EventStatusChanged = "reservation.status_changed"
)

// Event is published on the reservation topic whenever a reservation is
// created or moves through its lifecycle.
type Event struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	Status        string    `json:"status"`
	GuestName     string    `json:"guest_name"`
	RoomNumber    string    `json:"room_number"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	OccurredAt    time.Time `json:"occurred_at"`
}
