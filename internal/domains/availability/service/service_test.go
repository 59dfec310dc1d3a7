package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/service"
	reservationMocks "hotel/internal/domains/reservation/mocks"
	reservationModel "hotel/internal/domains/reservation/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*roomMocks.MockRoom, *reservationMocks.MockReservation, service.Availability) {
	ctrl := gomock.NewController(t)

	rooms := roomMocks.NewMockRoom(ctrl)
	reservations := reservationMocks.NewMockReservation(ctrl)

	return rooms, reservations, service.New(rooms, reservations, mocks.NewOtel())
}

func TestAvailabilityService_GetAll(t *testing.T) {
	t.Run("rooms held by active reservations are booked", func(t *testing.T) {
		rooms, reservations, svc := setup(t)
		roomID := "r2"

		rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{
			{ID: "r1", Number: "101", Status: roomModel.StatusAvailable},
			{ID: "r2", Number: "102", Status: roomModel.StatusAvailable},
		}, nil)
		reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]reservationModel.Reservation{
			{ID: "res-1", RoomID: &roomID, Status: reservationModel.StatusConfirmed},
		}, nil)

		res, err := svc.GetAll(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, roomModel.StatusAvailable, res[0].DisplayStatus)
		assert.True(t, res[0].Bookable)
		assert.Equal(t, roomModel.StatusBooked, res[1].DisplayStatus)
		assert.Equal(t, roomModel.StatusAvailable, res[1].Status)
		assert.False(t, res[1].Bookable)
	})

	t.Run("room lookup failure", func(t *testing.T) {
		rooms, _, svc := setup(t)

		rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.GetAll(context.Background(), "hotel-1")

		require.Error(t, err)
	})

	t.Run("reservation lookup failure", func(t *testing.T) {
		rooms, reservations, svc := setup(t)

		rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{{ID: "r1"}}, nil)
		reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.GetAll(context.Background(), "")

		require.Error(t, err)
	})
}

func TestAvailabilityService_Get(t *testing.T) {
	t.Run("unknown room", func(t *testing.T) {
		rooms, _, svc := setup(t)

		rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("room under maintenance held by a guest", func(t *testing.T) {
		rooms, reservations, svc := setup(t)
		roomID := "r1"

		rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, Status: roomModel.StatusMaintenance}, nil)
		reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]reservationModel.Reservation{
			{ID: "res-1", RoomID: &roomID, Status: reservationModel.StatusCheckedIn},
		}, nil)

		res, err := svc.Get(context.Background(), roomID)

		require.NoError(t, err)
		assert.Equal(t, roomModel.StatusBooked, res.DisplayStatus)
		require.NotNil(t, res.ReservationID)
		assert.Equal(t, "res-1", *res.ReservationID)
	})
}
