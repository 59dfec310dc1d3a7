package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "offers"
	EntityName = "offer"

	FieldID              = "id"
	FieldHotelID         = "hotel_id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldDiscountPercent = "discount_percent"
	FieldCode            = "code"
	FieldValidFrom       = "valid_from"
	FieldValidUntil      = "valid_until"
	FieldImage           = "image"
	FieldActive          = "active"
)

type Offer struct {
	ID              string     `db:"id"`
	HotelID         *string    `db:"hotel_id"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	DiscountPercent float64    `db:"discount_percent"`
	Code            string     `db:"code"`
	ValidFrom       *time.Time `db:"valid_from"`
	ValidUntil      *time.Time `db:"valid_until"`
	Image           string     `db:"image"`
	Active          bool       `db:"active"`
	model.Metadata
}
