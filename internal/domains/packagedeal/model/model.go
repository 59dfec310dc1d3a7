package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID             = "id"
	FieldHotelID        = "hotel_id"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldPrice          = "price"
	FieldDurationNights = "duration_nights"
	FieldInclusions     = "inclusions"
	FieldImages         = "images"
	FieldActive         = "active"
)

type Package struct {
	ID             string         `db:"id"`
	HotelID        *string        `db:"hotel_id"`
	Name           string         `db:"name"`
	Description    string         `db:"description"`
	Price          float64        `db:"price"`
	DurationNights int            `db:"duration_nights"`
	Inclusions     pq.StringArray `db:"inclusions"`
	Images         pq.StringArray `db:"images"`
	Active         bool           `db:"active"`
	model.Metadata
}
