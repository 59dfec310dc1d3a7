package dto

import (
	"hotel/internal/domains/offer/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateOfferRequest struct {
	HotelID         *string `json:"hotel_id"         validate:"omitempty,uuid"`
	Title           string  `json:"title"            validate:"required,notblank,max=150"`
	Description     string  `json:"description"      validate:"omitempty,max=5000"`
	DiscountPercent float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	Code            string  `json:"code"             validate:"omitempty,alphanum,max=30"`
	ValidFrom       *string `json:"valid_from"       validate:"omitempty,datetime=2006-01-02"`
	ValidUntil      *string `json:"valid_until"      validate:"omitempty,datetime=2006-01-02"`
	Image           string  `json:"image"            validate:"omitempty,url"`
	Active          *bool   `json:"active"`
}

func (c *CreateOfferRequest) ToModel(user string) model.Offer {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Offer{
		ID:              uuid.NewString(),
		HotelID:         c.HotelID,
		Title:           c.Title,
		Description:     c.Description,
		DiscountPercent: c.DiscountPercent,
		Code:            c.Code,
		ValidFrom:       shared.ParseDate(c.ValidFrom),
		ValidUntil:      shared.ParseDate(c.ValidUntil),
		Image:           c.Image,
		Active:          active,
		Metadata:        gModel.CreatedBy(user, now),
	}
}

type UpdateOfferRequest struct {
	HotelID         *string  `db:"hotel_id"         json:"hotel_id"         validate:"omitempty,uuid"`
	Title           *string  `db:"title"            json:"title"            validate:"omitempty,notblank,max=150"`
	Description     *string  `db:"description"      json:"description"      validate:"omitempty,max=5000"`
	DiscountPercent *float64 `db:"discount_percent" json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	Code            *string  `db:"code"             json:"code"             validate:"omitempty,alphanum,max=30"`
	ValidFrom       *string  `db:"valid_from"       json:"valid_from"       validate:"omitempty,datetime=2006-01-02"`
	ValidUntil      *string  `db:"valid_until"      json:"valid_until"      validate:"omitempty,datetime=2006-01-02"`
	Image           *string  `db:"image"            json:"image"            validate:"omitempty,url"`
	Active          *bool    `db:"active"           json:"active"`
}

type OfferResponse struct {
	ID              string  `json:"id"`
	HotelID         *string `json:"hotel_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	DiscountPercent float64 `json:"discount_percent"`
	Code            string  `json:"code"`
	ValidFrom       *string `json:"valid_from"`
	ValidUntil      *string `json:"valid_until"`
	Image           string  `json:"image"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (r *OfferResponse) FromModel(model model.Offer) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Title = model.Title
	r.Description = model.Description
	r.DiscountPercent = model.DiscountPercent
	r.Code = model.Code
	r.ValidFrom = shared.FormatDate(model.ValidFrom)
	r.ValidUntil = shared.FormatDate(model.ValidUntil)
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetOffersResponse struct {
	Offers    []OfferResponse `json:"offers"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOffersResponse) FromModels(models []model.Offer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Offers = make([]OfferResponse, len(models))
	for i, mod := range models {
		r.Offers[i].FromModel(mod)
	}
}
