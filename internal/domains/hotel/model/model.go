package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldName        = "name"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldDescription = "description"
	FieldImages      = "images"
)

type Hotel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Address     string         `db:"address"`
	City        string         `db:"city"`
	Phone       string         `db:"phone"`
	Email       string         `db:"email"`
	Description string         `db:"description"`
	Images      pq.StringArray `db:"images"`
	model.Metadata
}
