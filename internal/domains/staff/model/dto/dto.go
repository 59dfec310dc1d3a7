package dto

import (
	"hotel/internal/domains/staff/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	UserID  *string `json:"user_id"  validate:"omitempty,uuid"`
	HotelID *string `json:"hotel_id" validate:"omitempty,uuid"`
	Name    string  `json:"name"     validate:"required,notblank,max=100"`
	Email   string  `json:"email"    validate:"omitempty,email"`
	Phone   string  `json:"phone"    validate:"omitempty,max=30"`
	Role    string  `json:"role"     validate:"required,notblank,max=50"`
	Image   string  `json:"image"    validate:"omitempty,url"`
	Active  *bool   `json:"active"`
}

func (c *CreateStaffRequest) ToModel(user string) model.Staff {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	now := timezone.Now()

	return model.Staff{
		ID:       uuid.NewString(),
		UserID:   c.UserID,
		HotelID:  c.HotelID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Role:     c.Role,
		Image:    c.Image,
		Active:   active,
		Metadata: gModel.CreatedBy(user, now),
	}
}

type UpdateStaffRequest struct {
	UserID  *string `db:"user_id"  json:"user_id"  validate:"omitempty,uuid"`
	HotelID *string `db:"hotel_id" json:"hotel_id" validate:"omitempty,uuid"`
	Name    *string `db:"name"     json:"name"     validate:"omitempty,notblank,max=100"`
	Email   *string `db:"email"    json:"email"    validate:"omitempty,email"`
	Phone   *string `db:"phone"    json:"phone"    validate:"omitempty,max=30"`
	Role    *string `db:"role"     json:"role"     validate:"omitempty,notblank,max=50"`
	Image   *string `db:"image"    json:"image"    validate:"omitempty,url"`
	Active  *bool   `db:"active"   json:"active"`
}

type StaffResponse struct {
	ID      string  `json:"id"`
	UserID  *string `json:"user_id"`
	HotelID *string `json:"hotel_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Role    string  `json:"role"`
	Image   string  `json:"image"`
	Active  bool    `json:"active"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Role = model.Role
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}
