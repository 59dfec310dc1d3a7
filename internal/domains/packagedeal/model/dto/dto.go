package dto

import (
	"hotel/internal/domains/packagedeal/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreatePackageRequest struct {
	HotelID        *string  `json:"hotel_id"        validate:"omitempty,uuid"`
	Name           string   `json:"name"            validate:"required,notblank,max=150"`
	Description    string   `json:"description"     validate:"omitempty,max=5000"`
	Price          float64  `json:"price"           validate:"required,gt=0"`
	DurationNights int      `json:"duration_nights" validate:"omitempty,min=1,max=60"`
	Inclusions     []string `json:"inclusions"      validate:"omitempty,max=50,dive,notblank"`
	Images         []string `json:"images"          validate:"omitempty,max=20,dive,url"`
	Active         *bool    `json:"active"`
}

func (c *CreatePackageRequest) ToModel(user string) model.Package {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Package{
		ID:             uuid.NewString(),
		HotelID:        c.HotelID,
		Name:           c.Name,
		Description:    c.Description,
		Price:          c.Price,
		DurationNights: c.DurationNights,
		Inclusions:     pq.StringArray(c.Inclusions),
		Images:         pq.StringArray(c.Images),
		Active:         active,
		Metadata:       gModel.CreatedBy(user, now),
	}
}

type UpdatePackageRequest struct {
	HotelID        *string        `db:"hotel_id"        json:"hotel_id"        validate:"omitempty,uuid"`
	Name           *string        `db:"name"            json:"name"            validate:"omitempty,notblank,max=150"`
	Description    *string        `db:"description"     json:"description"     validate:"omitempty,max=5000"`
	Price          *float64       `db:"price"           json:"price"           validate:"omitempty,gt=0"`
	DurationNights *int           `db:"duration_nights" json:"duration_nights" validate:"omitempty,min=1,max=60"`
	Inclusions     pq.StringArray `db:"inclusions"      json:"inclusions"      validate:"omitempty,max=50,dive,notblank"`
	Images         pq.StringArray `db:"images"          json:"images"          validate:"omitempty,max=20,dive,url"`
	Active         *bool          `db:"active"          json:"active"`
}

type PackageResponse struct {
	ID             string   `json:"id"`
	HotelID        *string  `json:"hotel_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	DurationNights int      `json:"duration_nights"`
	Inclusions     []string `json:"inclusions"`
	Images         []string `json:"images"`
	Active         bool     `json:"active"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.DurationNights = model.DurationNights
	r.Inclusions = nonNil(model.Inclusions)
	r.Images = nonNil(model.Images)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
