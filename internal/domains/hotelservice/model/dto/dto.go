package dto

import (
	"hotel/internal/domains/hotelservice/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateServiceRequest struct {
	HotelID     *string  `json:"hotel_id"    validate:"omitempty,uuid"`
	Name        string   `json:"name"        validate:"required,notblank,max=150"`
	Category    string   `json:"category"    validate:"omitempty,max=50"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Price       float64  `json:"price"       validate:"omitempty,gte=0"`
	Images      []string `json:"images"      validate:"omitempty,max=20,dive,url"`
	Active      *bool    `json:"active"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Service{
		ID:          uuid.NewString(),
		HotelID:     c.HotelID,
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		Price:       c.Price,
		Images:      pq.StringArray(c.Images),
		Active:      active,
		Metadata:    gModel.CreatedBy(user, now),
	}
}

type UpdateServiceRequest struct {
	HotelID     *string        `db:"hotel_id"    json:"hotel_id"    validate:"omitempty,uuid"`
	Name        *string        `db:"name"        json:"name"        validate:"omitempty,notblank,max=150"`
	Category    *string        `db:"category"    json:"category"    validate:"omitempty,max=50"`
	Description *string        `db:"description" json:"description" validate:"omitempty,max=5000"`
	Price       *float64       `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Images      pq.StringArray `db:"images"      json:"images"      validate:"omitempty,max=20,dive,url"`
	Active      *bool          `db:"active"      json:"active"`
}

type ServiceResponse struct {
	ID          string   `json:"id"`
	HotelID     *string  `json:"hotel_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Active      bool     `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Category = model.Category
	r.Description = model.Description
	r.Price = model.Price
	r.Images = nonNil(model.Images)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
