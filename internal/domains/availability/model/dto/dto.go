package dto

import (
	"hotel/internal/domains/availability/model"
	roomDto "hotel/internal/domains/room/model/dto"
)

// RoomAvailabilityResponse carries the stored status in status and the
// resolved one in display_status.
type RoomAvailabilityResponse struct {
	roomDto.RoomResponse
	DisplayStatus string  `json:"display_status"`
	Bookable      bool    `json:"bookable"`
	ReservationID *string `json:"reservation_id"`
}

func (r *RoomAvailabilityResponse) FromModel(availability model.RoomAvailability) {
	r.RoomResponse.FromModel(availability.Room)
	r.DisplayStatus = availability.DisplayStatus
	r.Bookable = availability.Bookable()
	r.ReservationID = availability.ReservationID
}

func FromModels(availabilities []model.RoomAvailability) []RoomAvailabilityResponse {
	res := make([]RoomAvailabilityResponse, len(availabilities))
	for i, availability := range availabilities {
		res[i].FromModel(availability)
	}

	return res
}
