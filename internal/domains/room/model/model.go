package model

import (
	"slices"

	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldHotelID   = "hotel_id"
	FieldNumber    = "number"
	FieldType      = "type"
	FieldPrice     = "price"
	FieldCapacity  = "capacity"
	FieldBedType   = "bed_type"
	FieldBedCount  = "bed_count"
	FieldAmenities = "amenities"
	FieldViewType  = "view_type"
	FieldStatus    = "status"
	FieldImages    = "images"
)

// Stored room statuses. Booked is also the display status produced by the
// availability resolver for rooms held by an active reservation.
const (
	StatusAvailable   = "Available"
	StatusOccupied    = "Occupied"
	StatusMaintenance = "Maintenance"
	StatusReserved    = "Reserved"
	StatusBlocked     = "Blocked"
	StatusBooked      = "Booked"
)

// ManualStatuses are the stored statuses staff may set through the room form.
// Booked and Occupied are written only by the reservation lifecycle.
var ManualStatuses = []string{StatusAvailable, StatusMaintenance, StatusBlocked}

func IsManualStatus(status string) bool {
	return slices.Contains(ManualStatuses, status)
}

// IsHeld reports whether status is one the reservation lifecycle owns.
func IsHeld(status string) bool {
	return status == StatusBooked || status == StatusOccupied
}

// UnassignedLabel is rendered in place of a room number when a reservation has no room.
const UnassignedLabel = "Unassigned"

type Room struct {
	ID          string         `db:"id"`
	HotelID     *string        `db:"hotel_id"`
	Number      string         `db:"number"`
	Type        string         `db:"type"`
	Price       float64        `db:"price"`
	Capacity    int            `db:"capacity"`
	BedType     string         `db:"bed_type"`
	BedCount    int            `db:"bed_count"`
	Amenities   pq.StringArray `db:"amenities"`
	ViewType    string         `db:"view_type"`
	Status      string         `db:"status"`
	Images      pq.StringArray `db:"images"`
	Description string         `db:"description"`
	model.Metadata
}
