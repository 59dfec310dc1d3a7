package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	hotelMocks "hotel/internal/domains/hotel/mocks"
	hotelModel "hotel/internal/domains/hotel/model"
	invoiceMocks "hotel/internal/domains/invoice/mocks"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/service"
	reservationMocks "hotel/internal/domains/reservation/mocks"
	reservationModel "hotel/internal/domains/reservation/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	invoices     *invoiceMocks.MockInvoice
	reservations *reservationMocks.MockReservation
	rooms        *roomMocks.MockRoom
	hotels       *hotelMocks.MockHotel
	storage      *s3Mocks.MockS3
	svc          service.Invoice
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		invoices:     invoiceMocks.NewMockInvoice(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		rooms:        roomMocks.NewMockRoom(ctrl),
		hotels:       hotelMocks.NewMockHotel(ctrl),
		storage:      s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.Name = "Hotel"
	cfg.External.S3.InvoiceDir = "invoices"

	f.svc = service.New(f.invoices, f.reservations, f.rooms, f.hotels, f.storage, cfg, mocks.NewOtel())

	return f
}

func confirmedReservation() reservationModel.Reservation {
	roomID := "room-101"
	hotelID := "hotel-1"

	return reservationModel.Reservation{
		ID:          "3f2b1c4d-0000-0000-0000-000000000001",
		HotelID:     &hotelID,
		RoomID:      &roomID,
		GuestName:   "Budi",
		GuestPhone:  "0811",
		CheckIn:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:      reservationModel.StatusConfirmed,
		TotalAmount: 4000,
	}
}

func (f fixture) expectDocument(reservation reservationModel.Reservation) {
	f.reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation, nil)
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "room-101", Number: "101", Type: "Deluxe", Price: 2000}, nil)
	f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{ID: "hotel-1", Name: "Seaside"}, nil)
}

func TestInvoiceService_Generate(t *testing.T) {
	t.Run("first download records the invoice", func(t *testing.T) {
		f := newFixture(t)
		reservation := confirmedReservation()

		f.expectDocument(reservation)
		f.invoices.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)
		f.storage.EXPECT().
			UploadFileBytes(gomock.Any(), "", "invoices", gomock.Any(), "application/pdf", gomock.Any()).
			Return("https://files.example.com/invoices/x.pdf", nil)
		f.invoices.EXPECT().
			InsertIfAbsent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, invoice model.Invoice) (bool, error) {
				assert.Equal(t, reservation.ID, invoice.ReservationID)
				assert.InDelta(t, 4000, invoice.Amount, 0)
				assert.Equal(t, "https://files.example.com/invoices/x.pdf", invoice.FileURL)

				return true, nil
			})

		res, err := f.svc.Generate(context.Background(), reservation.ID)

		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.True(t, bytes.HasPrefix(res.Content, []byte("%PDF-")))
		assert.Contains(t, res.FileName, "INV-")
	})

	t.Run("existing invoice is not written again", func(t *testing.T) {
		f := newFixture(t)
		reservation := confirmedReservation()

		f.expectDocument(reservation)
		f.invoices.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{
			ID:            "inv-1",
			ReservationID: reservation.ID,
			InvoiceNumber: "INV-20240603-3F2B1C4D",
			IssuedAt:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		}, nil)

		res, err := f.svc.Generate(context.Background(), reservation.ID)

		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, "INV-20240603-3F2B1C4D.pdf", res.FileName)
	})

	t.Run("archive failure still records the invoice", func(t *testing.T) {
		f := newFixture(t)
		reservation := confirmedReservation()

		f.expectDocument(reservation)
		f.invoices.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)
		f.storage.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unavailable"))
		f.invoices.EXPECT().
			InsertIfAbsent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, invoice model.Invoice) (bool, error) {
				assert.Empty(t, invoice.FileURL)

				return true, nil
			})

		_, err := f.svc.Generate(context.Background(), reservation.ID)
		assert.NoError(t, err)
	})

	t.Run("unassigned reservation without hotel", func(t *testing.T) {
		f := newFixture(t)
		reservation := confirmedReservation()
		reservation.RoomID = nil
		reservation.HotelID = nil
		reservation.Status = reservationModel.StatusPending

		f.reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation, nil)
		f.invoices.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)
		f.storage.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("u", nil)
		f.invoices.EXPECT().InsertIfAbsent(gomock.Any(), gomock.Any()).Return(false, nil)

		res, err := f.svc.Generate(context.Background(), reservation.ID)

		require.NoError(t, err)
		assert.False(t, res.Created)
	})

	t.Run("cancelled reservation", func(t *testing.T) {
		f := newFixture(t)
		reservation := confirmedReservation()
		reservation.Status = reservationModel.StatusCancelled

		f.reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation, nil)

		_, err := f.svc.Generate(context.Background(), reservation.ID)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)

		f.reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservationModel.Reservation{}, nil)

		_, err := f.svc.Generate(context.Background(), "missing")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
