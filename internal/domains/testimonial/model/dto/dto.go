package dto

import (
	"hotel/internal/domains/testimonial/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateTestimonialRequest struct {
	HotelID   *string `json:"hotel_id"   validate:"omitempty,uuid"`
	GuestName string  `json:"guest_name" validate:"required,notblank,max=100"`
	Content   string  `json:"content"    validate:"required,notblank,max=2000"`
	Rating    int     `json:"rating"     validate:"required,min=1,max=5"`
	Image     string  `json:"image"      validate:"omitempty,url"`
	Approved  *bool   `json:"approved"`
}

func (c *CreateTestimonialRequest) ToModel(user string) model.Testimonial {
	approved := false
	if c.Approved != nil {
		approved = *c.Approved
	}

	now := timezone.Now()

	return model.Testimonial{
		ID:        uuid.NewString(),
		HotelID:   c.HotelID,
		GuestName: c.GuestName,
		Content:   c.Content,
		Rating:    c.Rating,
		Image:     c.Image,
		Approved:  approved,
		Metadata:  gModel.CreatedBy(user, now),
	}
}

type UpdateTestimonialRequest struct {
	HotelID   *string `db:"hotel_id"   json:"hotel_id"   validate:"omitempty,uuid"`
	GuestName *string `db:"guest_name" json:"guest_name" validate:"omitempty,notblank,max=100"`
	Content   *string `db:"content"    json:"content"    validate:"omitempty,notblank,max=2000"`
	Rating    *int    `db:"rating"     json:"rating"     validate:"omitempty,min=1,max=5"`
	Image     *string `db:"image"      json:"image"      validate:"omitempty,url"`
	Approved  *bool   `db:"approved"   json:"approved"`
}

type TestimonialResponse struct {
	ID        string  `json:"id"`
	HotelID   *string `json:"hotel_id"`
	GuestName string  `json:"guest_name"`
	Content   string  `json:"content"`
	Rating    int     `json:"rating"`
	Image     string  `json:"image"`
	Approved  bool    `json:"approved"`
	gDto.Metadata
}

func (r *TestimonialResponse) FromModel(model model.Testimonial) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.GuestName = model.GuestName
	r.Content = model.Content
	r.Rating = model.Rating
	r.Image = model.Image
	r.Approved = model.Approved
	r.Metadata.FromModel(model.Metadata)
}

type GetTestimonialsResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTestimonialsResponse) FromModels(models []model.Testimonial, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Testimonials = make([]TestimonialResponse, len(models))
	for i, mod := range models {
		r.Testimonials[i].FromModel(mod)
	}
}
