package model_test

import (
	"testing"

	"hotel/internal/domains/availability/model"
	reservationModel "hotel/internal/domains/reservation/model"
	roomModel "hotel/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestResolve(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: "r1", Number: "101", Status: roomModel.StatusAvailable},
		{ID: "r2", Number: "102", Status: roomModel.StatusMaintenance},
		{ID: "r3", Number: "103", Status: roomModel.StatusAvailable},
	}

	tests := []struct {
		name         string
		reservations []reservationModel.Reservation
		want         []string
	}{
		{
			name: "no reservations keeps stored statuses",
			want: []string{roomModel.StatusAvailable, roomModel.StatusMaintenance, roomModel.StatusAvailable},
		},
		{
			name: "confirmed reservation books its room",
			reservations: []reservationModel.Reservation{
				{ID: "a", RoomID: ptr("r1"), Status: reservationModel.StatusConfirmed},
			},
			want: []string{roomModel.StatusBooked, roomModel.StatusMaintenance, roomModel.StatusAvailable},
		},
		{
			name: "checked in overrides maintenance",
			reservations: []reservationModel.Reservation{
				{ID: "a", RoomID: ptr("r2"), Status: reservationModel.StatusCheckedIn},
			},
			want: []string{roomModel.StatusAvailable, roomModel.StatusBooked, roomModel.StatusAvailable},
		},
		{
			name: "inactive reservations are ignored",
			reservations: []reservationModel.Reservation{
				{ID: "a", RoomID: ptr("r1"), Status: reservationModel.StatusPending},
				{ID: "b", RoomID: ptr("r3"), Status: reservationModel.StatusCancelled},
				{ID: "c", RoomID: ptr("r3"), Status: reservationModel.StatusCheckedOut},
				{ID: "d", Status: reservationModel.StatusConfirmed},
			},
			want: []string{roomModel.StatusAvailable, roomModel.StatusMaintenance, roomModel.StatusAvailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Resolve(rooms, tt.reservations)

			require.Len(t, got, len(rooms))

			for i, availability := range got {
				assert.Equal(t, rooms[i].ID, availability.Room.ID)
				assert.Equal(t, tt.want[i], availability.DisplayStatus)
			}
		})
	}
}

func TestResolve_Bookable(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: "r1", Status: roomModel.StatusAvailable},
		{ID: "r2", Status: roomModel.StatusAvailable},
	}

	got := model.Resolve(rooms, []reservationModel.Reservation{
		{ID: "a", RoomID: ptr("r2"), Status: reservationModel.StatusConfirmed},
	})

	assert.True(t, got[0].Bookable())
	assert.Nil(t, got[0].ReservationID)
	assert.False(t, got[1].Bookable())
	require.NotNil(t, got[1].ReservationID)
	assert.Equal(t, "a", *got[1].ReservationID)
}

func TestActiveHolders_OrderIndependent(t *testing.T) {
	forward := []reservationModel.Reservation{
		{ID: "b", RoomID: ptr("r1"), Status: reservationModel.StatusConfirmed},
		{ID: "a", RoomID: ptr("r1"), Status: reservationModel.StatusCheckedIn},
	}
	backward := []reservationModel.Reservation{forward[1], forward[0]}

	assert.Equal(t, map[string]string{"r1": "a"}, model.ActiveHolders(forward))
	assert.Equal(t, model.ActiveHolders(forward), model.ActiveHolders(backward))
}
