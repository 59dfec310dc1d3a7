package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldRoomID      = "room_id"
	FieldGuestName   = "guest_name"
	FieldGuestPhone  = "guest_phone"
	FieldGuestEmail  = "guest_email"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldNotes       = "notes"
	FieldTotalAmount = "total_amount"
)

type Reservation struct {
	ID          string    `db:"id"`
	HotelID     *string   `db:"hotel_id"`
	RoomID      *string   `db:"room_id"`
	RoomNumber  *string   `column:"number"   db:"room_number" table:"rooms"`
	GuestName   string    `db:"guest_name"`
	GuestPhone  string    `db:"guest_phone"`
	GuestEmail  string    `db:"guest_email"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	Adults      int       `db:"adults"`
	Children    int       `db:"children"`
	Status      string    `db:"status"`
	Notes       string    `db:"notes"`
	TotalAmount float64   `db:"total_amount"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = reservations.room_id"
}

// RoomAssignment is the outcome of assigning a room to a reservation. It is
// persisted atomically together with the room status changes it implies.
type RoomAssignment struct {
	ReservationID  string
	RoomID         string
	PreviousRoomID string
	TotalAmount    float64
	User           string
}

// Transition is a status change of a reservation and, when a room is held,
// the stored status the room moves to.
type Transition struct {
	ReservationID string
	Status        string
	RoomID        string
	RoomStatus    string
	User          string
}
