package worker

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/model/dto"
	notificationService "hotel/internal/domains/notification/service"
	reservationModel "hotel/internal/domains/reservation/model"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Worker turns reservation events into push notifications for staff devices.
type Worker struct {
	kafka         kafka.Client
	notifications notificationService.Notification
	cfg           *config.Config
	otel          otel.Otel
}

func New(kafka kafka.Client, notifications notificationService.Notification, cfg *config.Config, otel otel.Otel) *Worker {
	return &Worker{
		kafka:         kafka,
		notifications: notifications,
		cfg:           cfg,
		otel:          otel,
	}
}

// Run consumes the reservation topic until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	log.Info().Str("topic", w.cfg.Kafka.Topic.Reservation).Msg("Starting reservation worker")

	w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topic.Reservation, w.Handle)
}

func (w *Worker) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".reservation.Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	decoded, err := kafka.DecodeKafkaMessage[reservationModel.Event](message)
	if err != nil {
		return fmt.Errorf("failed to decode reservation event: %w", err)
	}

	event, _ := decoded.Value.(reservationModel.Event)

	req, ok := Notification(event)
	if !ok {
		log.Debug().Str("type", event.Type).Msg("reservation event has no notification")

		return nil
	}

	res, err := w.notifications.Broadcast(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to notify staff: %w", err)
	}

	log.Info().
		Str("reservation", event.ReservationID).
		Str("type", event.Type).
		Int("recipients", res.Recipients).
		Int("sent", res.Sent).
		Msg("staff notified")

	return nil
}

// Notification builds the staff notification for a reservation event.
func Notification(event reservationModel.Event) (dto.BroadcastRequest, bool) {
	req := dto.BroadcastRequest{
		Audience: model.AudienceStaff,
		Data: map[string]any{
			"type":           event.Type,
			"reservation_id": event.ReservationID,
		},
	}

	switch event.Type {
	case reservationModel.EventEnquiry:
		req.Title = "New booking enquiry"
		req.Body = fmt.Sprintf("%s requested %s to %s", event.GuestName, event.CheckIn, event.CheckOut)
	case reservationModel.EventCreated:
		req.Title = "New reservation"
		req.Body = fmt.Sprintf("%s, room %s, %s to %s", event.GuestName, event.RoomNumber, event.CheckIn, event.CheckOut)
	case reservationModel.EventRoomAssigned:
		req.Title = "Room assigned"
		req.Body = fmt.Sprintf("Room %s assigned to %s", event.RoomNumber, event.GuestName)
	case reservationModel.EventStatusChanged:
		req.Title = "Reservation updated"
		req.Body = fmt.Sprintf("%s is now %s", event.GuestName, event.Status)
	default:
		return req, false
	}

	return req, true
}
