package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateUserRequest struct {
	Email        string   `json:"email"                   validate:"required,email"`
	Password     string   `json:"password"                validate:"required,min=8"`
	FullName     *string  `json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	Phone        *string  `json:"phone,omitempty"         validate:"omitempty,max=30"`
	Roles        []string `json:"roles,omitempty"         validate:"omitempty,dive,oneof=owner staff customer"`
	ProfileImage *string  `json:"profile_image,omitempty" validate:"omitempty,url"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	roles := pq.StringArray{}
	roles = append(roles, r.Roles...)

	now := timezone.Now()

	return model.User{
		ID:           uuid.NewString(),
		Email:        r.Email,
		Password:     hashedPassword,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Roles:        roles,
		ProfileImage: r.ProfileImage,
		Active:       true,
		Metadata:     gModel.CreatedBy(username, now),
	}
}

type UserResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	FullName     *string  `json:"full_name,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Roles        []string `json:"roles"`
	ProfileImage *string  `json:"profile_image,omitempty"`
	LastLogin    *string  `json:"last_login,omitempty"`
	Active       bool     `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Roles = []string(model.Roles)
	r.ProfileImage = model.ProfileImage
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if r.Roles == nil {
		r.Roles = []string{}
	}

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

type UpdateUserRequest struct {
	FullName     *string        `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	Phone        *string        `db:"phone"         json:"phone,omitempty"         validate:"omitempty,max=30"`
	Roles        pq.StringArray `db:"roles"         json:"roles,omitempty"         validate:"omitempty,dive,oneof=owner staff customer"`
	ProfileImage *string        `db:"profile_image" json:"profile_image,omitempty" validate:"omitempty,url"`
	Active       *bool          `db:"active"        json:"active,omitempty"`
}

// UpdateProfileRequest is what a user may change on their own account.
type UpdateProfileRequest struct {
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	Phone        *string `db:"phone"         json:"phone,omitempty"         validate:"omitempty,max=30"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty" validate:"omitempty,url"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
