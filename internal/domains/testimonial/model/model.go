package model

import (
	"hotel/shared/model"
)

const (
	TableName  = "testimonials"
	EntityName = "testimonial"

	FieldID        = "id"
	FieldHotelID   = "hotel_id"
	FieldGuestName = "guest_name"
	FieldContent   = "content"
	FieldRating    = "rating"
	FieldImage     = "image"
	FieldApproved  = "approved"
)

type Testimonial struct {
	ID        string  `db:"id"`
	HotelID   *string `db:"hotel_id"`
	GuestName string  `db:"guest_name"`
	Content   string  `db:"content"`
	Rating    int     `db:"rating"`
	Image     string  `db:"image"`
	Approved  bool    `db:"approved"`
	model.Metadata
}
