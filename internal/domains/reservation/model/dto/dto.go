package dto

import (
	"time"

	"hotel/internal/domains/reservation/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// CreateEnquiryRequest is a booking enquiry submitted by a guest.
type CreateEnquiryRequest struct {
	HotelID    *string `json:"hotel_id"    validate:"omitempty,uuid"`
	GuestName  string  `json:"guest_name"  validate:"required,notblank,max=100"`
	GuestPhone string  `json:"guest_phone" validate:"required,notblank,max=30"`
	GuestEmail string  `json:"guest_email" validate:"omitempty,email"`
	CheckIn    string  `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string  `json:"check_out"   validate:"required,datetime=2006-01-02"`
	Adults     int     `json:"adults"      validate:"omitempty,min=1,max=20"`
	Children   int     `json:"children"    validate:"omitempty,min=0,max=20"`
	Notes      string  `json:"notes"       validate:"omitempty,max=1000"`
}

// CreateReservationRequest is a reservation entered by staff. With a room it
// is created Confirmed and the room is booked in the same transaction.
type CreateReservationRequest struct {
	CreateEnquiryRequest
	RoomID *string `json:"room_id" validate:"omitempty,uuid"`
}

// Stay parses and checks the requested dates.
func (c *CreateEnquiryRequest) Stay() (checkIn, checkOut time.Time, err error) {
	return ParseStay(c.CheckIn, c.CheckOut)
}

func (c *CreateEnquiryRequest) ToModel(user, status string, checkIn, checkOut time.Time) model.Reservation {
	adults := c.Adults
	if adults == 0 {
		adults = 1
	}

	now := timezone.Now()

	return model.Reservation{
		ID:         uuid.NewString(),
		HotelID:    c.HotelID,
		GuestName:  c.GuestName,
		GuestPhone: c.GuestPhone,
		GuestEmail: c.GuestEmail,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     adults,
		Children:   c.Children,
		Status:     status,
		Notes:      c.Notes,
		Metadata:   gModel.CreatedBy(user, now),
	}
}

// ParseStay parses check-in and check-out dates (YYYY-MM-DD, UTC) and
// requires at least one night between them.
func ParseStay(checkIn, checkOut string) (in, out time.Time, err error) {
	in, err = time.Parse(constant.DayDateFormat, checkIn)
	if err != nil {
		return in, out, failure.BadRequestFromString("check_in must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	out, err = time.Parse(constant.DayDateFormat, checkOut)
	if err != nil {
		return in, out, failure.BadRequestFromString("check_out must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if model.Nights(in, out) < 1 {
		return in, out, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	return in, out, nil
}

type UpdateReservationRequest struct {
	GuestName  *string `db:"guest_name"  json:"guest_name"  validate:"omitempty,notblank,max=100"`
	GuestPhone *string `db:"guest_phone" json:"guest_phone" validate:"omitempty,notblank,max=30"`
	GuestEmail *string `db:"guest_email" json:"guest_email" validate:"omitempty,email"`
	CheckIn    *string `json:"check_in"    validate:"omitempty,datetime=2006-01-02"`
	CheckOut   *string `json:"check_out"   validate:"omitempty,datetime=2006-01-02"`
	Adults     *int    `db:"adults"      json:"adults"      validate:"omitempty,min=1,max=20"`
	Children   *int    `db:"children"    json:"children"    validate:"omitempty,min=0,max=20"`
	Notes      *string `db:"notes"       json:"notes"       validate:"omitempty,max=1000"`
}

type AssignRoomRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Confirmed 'Checked In' 'Checked Out' Cancelled"`
}

type ReservationResponse struct {
	ID          string  `json:"id"`
	HotelID     *string `json:"hotel_id"`
	RoomID      *string `json:"room_id"`
	RoomNumber  string  `json:"room_number"`
	GuestName   string  `json:"guest_name"`
	GuestPhone  string  `json:"guest_phone"`
	GuestEmail  string  `json:"guest_email"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	Adults      int     `json:"adults"`
	Children    int     `json:"children"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	TotalAmount float64 `json:"total_amount"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomID = model.RoomID
	r.RoomNumber = roomModel.UnassignedLabel

	if model.RoomID != nil && model.RoomNumber != nil {
		r.RoomNumber = *model.RoomNumber
	}

	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.GuestEmail = model.GuestEmail
	r.CheckIn = model.CheckIn.Format(constant.DayDateFormat)
	r.CheckOut = model.CheckOut.Format(constant.DayDateFormat)
	r.Nights = modelNights(model)
	r.Adults = model.Adults
	r.Children = model.Children
	r.Status = model.Status
	r.Notes = model.Notes
	r.TotalAmount = model.TotalAmount
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

func modelNights(reservation model.Reservation) int {
	nights := model.Nights(reservation.CheckIn, reservation.CheckOut)
	if nights < 0 {
		return 0
	}

	return nights
}
