package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/notification/mocks"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/model/dto"
	reservationModel "hotel/internal/domains/reservation/model"
	"hotel/internal/worker"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func message(t *testing.T, event reservationModel.Event) kafkaGo.Message {
	t.Helper()

	value, err := json.Marshal(event)
	require.NoError(t, err)

	return kafkaGo.Message{Key: []byte(event.ReservationID), Value: value}
}

func TestNotification(t *testing.T) {
	tests := []struct {
		name      string
		event     reservationModel.Event
		wantTitle string
		wantBody  string
		wantOK    bool
	}{
		{
			name: "enquiry",
			event: reservationModel.Event{
				Type: reservationModel.EventEnquiry, GuestName: "Ana", CheckIn: "2024-06-01", CheckOut: "2024-06-03",
			},
			wantTitle: "New booking enquiry",
			wantBody:  "Ana requested 2024-06-01 to 2024-06-03",
			wantOK:    true,
		},
		{
			name:      "room assigned",
			event:     reservationModel.Event{Type: reservationModel.EventRoomAssigned, GuestName: "Ana", RoomNumber: "101"},
			wantTitle: "Room assigned",
			wantBody:  "Room 101 assigned to Ana",
			wantOK:    true,
		},
		{
			name:      "status changed",
			event:     reservationModel.Event{Type: reservationModel.EventStatusChanged, GuestName: "Ana", Status: "Cancelled"},
			wantTitle: "Reservation updated",
			wantBody:  "Ana is now Cancelled",
			wantOK:    true,
		},
		{
			name:  "unknown type",
			event: reservationModel.Event{Type: "reservation.archived"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := worker.Notification(tt.event)

			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.wantTitle, req.Title)
				assert.Equal(t, tt.wantBody, req.Body)
				assert.Equal(t, model.AudienceStaff, req.Audience)
			}
		})
	}
}

func TestWorker_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifications := mocks.NewMockNotification(ctrl)
	w := worker.New(kafkaMocks.NewMockClient(ctrl), notifications, &config.Config{}, otelMocks.NewOtel())

	event := reservationModel.Event{
		Type:          reservationModel.EventEnquiry,
		ReservationID: "res-1",
		GuestName:     "Ana",
		CheckIn:       "2024-06-01",
		CheckOut:      "2024-06-03",
	}

	t.Run("notifies staff", func(t *testing.T) {
		notifications.EXPECT().
			Broadcast(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.BroadcastRequest) (dto.BroadcastResponse, error) {
				assert.Equal(t, model.AudienceStaff, req.Audience)
				assert.Equal(t, "res-1", req.Data["reservation_id"])

				return dto.BroadcastResponse{Recipients: 2, Sent: 2}, nil
			})

		assert.NoError(t, w.Handle(context.Background(), message(t, event)))
	})

	t.Run("broadcast failure is returned", func(t *testing.T) {
		notifications.EXPECT().
			Broadcast(gomock.Any(), gomock.Any()).
			Return(dto.BroadcastResponse{}, errors.New("gateway down"))

		assert.Error(t, w.Handle(context.Background(), message(t, event)))
	})

	t.Run("undecodable message is rejected without a broadcast", func(t *testing.T) {
		err := w.Handle(context.Background(), kafkaGo.Message{Value: []byte("{")})

		assert.Error(t, err)
	})

	t.Run("unknown event is ignored", func(t *testing.T) {
		err := w.Handle(context.Background(), message(t, reservationModel.Event{Type: "reservation.archived"}))

		assert.NoError(t, err)
	})
}

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "hotel-worker"
	cfg.Kafka.Topic.Reservation = "reservation.events"

	client := kafkaMocks.NewMockClient(ctrl)
	notifications := mocks.NewMockNotification(ctrl)
	w := worker.New(client, notifications, cfg, otelMocks.NewOtel())

	event := reservationModel.Event{Type: reservationModel.EventRoomAssigned, ReservationID: "res-2", RoomNumber: "101", GuestName: "Budi"}

	notifications.EXPECT().
		Broadcast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.BroadcastRequest) (dto.BroadcastResponse, error) {
			assert.Equal(t, "Room 101 assigned to Budi", req.Body)

			return dto.BroadcastResponse{Recipients: 1, Sent: 1}, nil
		})

	client.EXPECT().
		Consume(gomock.Any(), "hotel-worker", "reservation.events", gomock.Any()).
		Do(func(ctx context.Context, _, _ string, handler kafka.Handler) {
			assert.NoError(t, handler(ctx, message(t, event)))
		})

	w.Run(context.Background())
}
