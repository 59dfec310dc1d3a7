package model

import (
	"hotel/shared/model"
)

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldHotelID = "hotel_id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldRole    = "role"
	FieldImage   = "image"
	FieldActive  = "active"
)

type Staff struct {
	ID      string  `db:"id"`
	UserID  *string `db:"user_id"`
	HotelID *string `db:"hotel_id"`
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Phone   string  `db:"phone"`
	Role    string  `db:"role"`
	Image   string  `db:"image"`
	Active  bool    `db:"active"`
	model.Metadata
}
