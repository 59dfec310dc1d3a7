package dto

import (
	"hotel/internal/domains/hotel/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateHotelRequest struct {
	Name        string   `json:"name"        validate:"required,notblank,max=150"`
	Address     string   `json:"address"     validate:"omitempty,max=255"`
	City        string   `json:"city"        validate:"omitempty,max=100"`
	Phone       string   `json:"phone"       validate:"omitempty,max=30"`
	Email       string   `json:"email"       validate:"omitempty,email"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Images      []string `json:"images"      validate:"omitempty,max=20,dive,url"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	now := timezone.Now()

	return model.Hotel{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Address:     c.Address,
		City:        c.City,
		Phone:       c.Phone,
		Email:       c.Email,
		Description: c.Description,
		Images:      pq.StringArray(c.Images),
		Metadata:    gModel.CreatedBy(user, now),
	}
}

type UpdateHotelRequest struct {
	Name        *string        `db:"name"        json:"name"        validate:"omitempty,notblank,max=150"`
	Address     *string        `db:"address"     json:"address"     validate:"omitempty,max=255"`
	City        *string        `db:"city"        json:"city"        validate:"omitempty,max=100"`
	Phone       *string        `db:"phone"       json:"phone"       validate:"omitempty,max=30"`
	Email       *string        `db:"email"       json:"email"       validate:"omitempty,email"`
	Description *string        `db:"description" json:"description" validate:"omitempty,max=5000"`
	Images      pq.StringArray `db:"images"      json:"images"      validate:"omitempty,max=20,dive,url"`
}

type HotelResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.City = model.City
	r.Phone = model.Phone
	r.Email = model.Email
	r.Description = model.Description
	r.Images = nonNil(model.Images)
	r.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
