package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImages      = "images"
	FieldActive      = "active"
)

type Service struct {
	ID          string         `db:"id"`
	HotelID     *string        `db:"hotel_id"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	Description string         `db:"description"`
	Price       float64        `db:"price"`
	Images      pq.StringArray `db:"images"`
	Active      bool           `db:"active"`
	model.Metadata
}
