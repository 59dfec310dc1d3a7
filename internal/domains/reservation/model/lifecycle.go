package model

import (
	"slices"
	"time"

	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/timezone"
)

const (
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "Checked In"
	StatusCheckedOut = "Checked Out"
	StatusCancelled  = "Cancelled"
)

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

// ActiveStatuses are the statuses in which a reservation holds its room.
var ActiveStatuses = []string{StatusConfirmed, StatusCheckedIn}

func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

func IsActive(status string) bool {
	return slices.Contains(ActiveStatuses, status)
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

// RoomStatusFor returns the stored room status that goes with a reservation
// entering status.
func RoomStatusFor(status string) string {
	switch status {
	case StatusConfirmed:
		return roomModel.StatusBooked
	case StatusCheckedIn:
		return roomModel.StatusOccupied
	default:
		return roomModel.StatusAvailable
	}
}

// Nights counts the nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return timezone.DaysBetween(checkIn, checkOut)
}

// Total is the stay price for the given nights at a nightly rate.
func Total(nights int, price float64) float64 {
	if nights <= 0 {
		return 0
	}

	return float64(nights) * price
}
