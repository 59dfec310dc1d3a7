package model

import (
	reservationModel "hotel/internal/domains/reservation/model"
	roomModel "hotel/internal/domains/room/model"
)

// RoomAvailability is a room together with the status shown to users. A
// room held by an active reservation is displayed as Booked whatever its
// stored status is.
type RoomAvailability struct {
	Room          roomModel.Room
	DisplayStatus string
	ReservationID *string
}

func (r RoomAvailability) Bookable() bool {
	return r.DisplayStatus == roomModel.StatusAvailable
}

// Resolve derives the display status of every room from the reservations
// that currently hold rooms. Reservations that are not Confirmed or Checked
// In are ignored, so callers may pass an unfiltered list. The result keeps
// the order of rooms and does not depend on the order of reservations.
func Resolve(rooms []roomModel.Room, reservations []reservationModel.Reservation) []RoomAvailability {
	holders := ActiveHolders(reservations)

	result := make([]RoomAvailability, len(rooms))
	for i, room := range rooms {
		result[i] = RoomAvailability{Room: room, DisplayStatus: room.Status}

		if reservationID, ok := holders[room.ID]; ok {
			id := reservationID
			result[i].DisplayStatus = roomModel.StatusBooked
			result[i].ReservationID = &id
		}
	}

	return result
}

// ActiveHolders maps room ids to the id of the active reservation holding
// them. When several active reservations reference one room, the smallest
// reservation id wins so the mapping stays independent of input order.
func ActiveHolders(reservations []reservationModel.Reservation) map[string]string {
	holders := make(map[string]string)

	for _, reservation := range reservations {
		if reservation.RoomID == nil || !reservationModel.IsActive(reservation.Status) {
			continue
		}

		roomID := *reservation.RoomID
		if current, ok := holders[roomID]; ok && current <= reservation.ID {
			continue
		}

		holders[roomID] = reservation.ID
	}

	return holders
}
