package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	HotelID     *string  `json:"hotel_id"    validate:"omitempty,uuid"`
	Number      string   `json:"number"      validate:"required,notblank,max=20"`
	Type        string   `json:"type"        validate:"required,notblank,max=50"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Capacity    int      `json:"capacity"    validate:"required,min=1"`
	BedType     string   `json:"bed_type"    validate:"omitempty,max=50"`
	BedCount    int      `json:"bed_count"   validate:"omitempty,min=0"`
	Amenities   []string `json:"amenities"   validate:"omitempty,dive,max=100"`
	ViewType    string   `json:"view_type"   validate:"omitempty,max=50"`
	Status      string   `json:"status"      validate:"omitempty,oneof=Available Maintenance Blocked"`
	Images      []string `json:"images"      validate:"omitempty,dive,url"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	now := timezone.Now()

	return model.Room{
		ID:          uuid.NewString(),
		HotelID:     c.HotelID,
		Number:      c.Number,
		Type:        c.Type,
		Price:       c.Price,
		Capacity:    c.Capacity,
		BedType:     c.BedType,
		BedCount:    c.BedCount,
		Amenities:   pq.StringArray(c.Amenities),
		ViewType:    c.ViewType,
		Status:      status,
		Images:      pq.StringArray(c.Images),
		Description: c.Description,
		Metadata:    gModel.CreatedBy(user, now),
	}
}

type CreateRoomsRequest struct {
	Rooms []CreateRoomRequest `json:"rooms" validate:"required,min=1,max=100,dive"`
}

func (c *CreateRoomsRequest) ToModels(user string) []model.Room {
	rooms := make([]model.Room, len(c.Rooms))
	for i := range c.Rooms {
		rooms[i] = c.Rooms[i].ToModel(user)
	}

	return rooms
}

type UpdateRoomRequest struct {
	HotelID     *string        `db:"hotel_id"    json:"hotel_id"    validate:"omitempty,uuid"`
	Number      *string        `db:"number"      json:"number"      validate:"omitempty,notblank,max=20"`
	Type        *string        `db:"type"        json:"type"        validate:"omitempty,notblank,max=50"`
	Price       *float64       `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Capacity    *int           `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	BedType     *string        `db:"bed_type"    json:"bed_type"    validate:"omitempty,max=50"`
	BedCount    *int           `db:"bed_count"   json:"bed_count"   validate:"omitempty,min=0"`
	Amenities   pq.StringArray `db:"amenities"   json:"amenities"   validate:"omitempty,dive,max=100"`
	ViewType    *string        `db:"view_type"   json:"view_type"   validate:"omitempty,max=50"`
	Status      *string        `db:"status"      json:"status"      validate:"omitempty,oneof=Available Maintenance Blocked"`
	Images      pq.StringArray `db:"images"      json:"images"      validate:"omitempty,dive,url"`
	Description *string        `db:"description" json:"description" validate:"omitempty,max=2000"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	HotelID     *string  `json:"hotel_id"`
	Number      string   `json:"number"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Capacity    int      `json:"capacity"`
	BedType     string   `json:"bed_type"`
	BedCount    int      `json:"bed_count"`
	Amenities   []string `json:"amenities"`
	ViewType    string   `json:"view_type"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.BedType = model.BedType
	r.BedCount = model.BedCount
	r.Amenities = nonNil(model.Amenities)
	r.ViewType = model.ViewType
	r.Status = model.Status
	r.Images = nonNil(model.Images)
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
