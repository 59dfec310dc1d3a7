package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetReservation    = "reservation:get"
	CacheGetAllReservation = "reservation:gets"
	CacheCountReservation  = "reservation:count"
)

var (
	errRoomUnavailable = failure.Conflict("room is already held by another active reservation")
	errRoomOutOfOrder  = failure.Conflict("room is not in service")
)

type Reservation interface {
	// CreateEnquiry records a guest booking enquiry. Enquiries start Pending
	// without a room.
	CreateEnquiry(ctx context.Context, req dto.CreateEnquiryRequest) (dto.ReservationResponse, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	// List reads every reservation straight from the store, newest first.
	List(ctx context.Context) ([]dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	AssignRoom(ctx context.Context, id string, req dto.AssignRoomRequest) (dto.ReservationResponse, error)
	ChangeStatus(ctx context.Context, id string, req dto.ChangeStatusRequest) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Reservation
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(
	repo repository.Reservation,
	roomRepo roomRepository.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafka,
		otel:     otel,
	}
}

func (s *serviceImpl) CreateEnquiry(ctx context.Context, req dto.CreateEnquiryRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateEnquiry")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	reservation := req.ToModel(user, model.StatusPending, checkIn, checkOut)
	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation enquiry")

		return res, fmt.Errorf("failed to create reservation enquiry: %w", err)
	}

	res.FromModel(reservation)
	s.afterWrite(ctx, model.EventEnquiry, res)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.RoomID == nil {
		reservation := req.ToModel(user, model.StatusPending, checkIn, checkOut)
		if err = s.repo.Insert(ctx, reservation); err != nil {
			log.Error().Err(err).Msg("failed to create reservation")

			return res, fmt.Errorf("failed to create reservation: %w", err)
		}

		res.FromModel(reservation)
		s.afterWrite(ctx, model.EventCreated, res)

		return res, nil
	}

	room, err := s.bookableRoom(ctx, *req.RoomID, constant.Empty)
	if err != nil {
		return res, err
	}

	reservation := req.ToModel(user, model.StatusConfirmed, checkIn, checkOut)
	reservation.RoomID = &room.ID
	reservation.RoomNumber = &room.Number
	reservation.TotalAmount = model.Total(model.Nights(checkIn, checkOut), room.Price)

	if err = s.repo.InsertWithRoom(ctx, reservation, roomModel.StatusBooked); err != nil {
		log.Error().Err(err).Str("room", room.ID).Msg("failed to create reservation with room")

		return res, mapRoomConflict(err, "failed to create reservation")
	}

	res.FromModel(reservation)
	s.afterWrite(ctx, model.EventCreated, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations")

		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	res = make([]dto.ReservationResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if model.IsTerminal(current.Status) {
		return failure.Conflict(fmt.Sprintf("a %s reservation can no longer be edited", current.Status)) // nolint:wrapcheck
	}

	fields := shared.TransformFields(req, user)

	if req.CheckIn != nil || req.CheckOut != nil {
		checkIn := current.CheckIn.Format(constant.DayDateFormat)
		checkOut := current.CheckOut.Format(constant.DayDateFormat)

		if req.CheckIn != nil {
			checkIn = *req.CheckIn
		}

		if req.CheckOut != nil {
			checkOut = *req.CheckOut
		}

		in, out, err := dto.ParseStay(checkIn, checkOut)
		if err != nil {
			return err
		}

		fields[model.FieldCheckIn] = in
		fields[model.FieldCheckOut] = out

		if current.RoomID != nil {
			room, err := s.roomRepo.Get(ctx, shared.FilterByID(*current.RoomID, roomModel.FieldID, roomModel.TableName))
			if err != nil {
				return fmt.Errorf("failed to get reservation room: %w", err)
			}

			fields[model.FieldTotalAmount] = model.Total(model.Nights(in, out), room.Price)
		}
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	s.invalidate(ctx, false, id)

	return nil
}

func (s *serviceImpl) AssignRoom(ctx context.Context, id string, req dto.AssignRoomRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if current.Status != model.StatusPending && current.Status != model.StatusConfirmed {
		return res, failure.Conflict("a room can only be assigned to a Pending or Confirmed reservation") // nolint:wrapcheck
	}

	room, err := s.bookableRoom(ctx, req.RoomID, id)
	if err != nil {
		return res, err
	}

	assignment := model.RoomAssignment{
		ReservationID: id,
		RoomID:        room.ID,
		TotalAmount:   model.Total(model.Nights(current.CheckIn, current.CheckOut), room.Price),
		User:          user,
	}

	if current.RoomID != nil {
		assignment.PreviousRoomID = *current.RoomID
	}

	if err = s.repo.AssignRoom(ctx, assignment); err != nil {
		log.Error().Err(err).Str("reservation", id).Str("room", room.ID).Msg("failed to assign room")

		return res, mapRoomConflict(err, "failed to assign room")
	}

	current.RoomID = &room.ID
	current.RoomNumber = &room.Number
	current.Status = model.StatusConfirmed
	current.TotalAmount = assignment.TotalAmount

	res.FromModel(current)
	s.afterWrite(ctx, model.EventRoomAssigned, res)

	return res, nil
}

func (s *serviceImpl) ChangeStatus(ctx context.Context, id string, req dto.ChangeStatusRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanTransition(current.Status, req.Status) {
		return res, failure.Conflict(fmt.Sprintf("cannot move a reservation from %s to %s", current.Status, req.Status)) // nolint:wrapcheck
	}

	if req.Status == model.StatusCheckedIn && current.RoomID == nil {
		return res, failure.BadRequestFromString("assign a room before checking in") // nolint:wrapcheck
	}

	transition := model.Transition{
		ReservationID: id,
		Status:        req.Status,
		User:          user,
	}

	if current.RoomID != nil {
		transition.RoomID = *current.RoomID
		transition.RoomStatus = model.RoomStatusFor(req.Status)
	}

	if err = s.repo.Transition(ctx, transition); err != nil {
		log.Error().Err(err).Str("reservation", id).Str("status", req.Status).Msg("failed to change reservation status")

		return res, fmt.Errorf("failed to change reservation status: %w", err)
	}

	current.Status = req.Status

	res.FromModel(current)
	s.afterWrite(ctx, model.EventStatusChanged, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	release := constant.Empty
	if current.RoomID != nil && model.IsActive(current.Status) {
		release = *current.RoomID
	}

	if err = s.repo.DeleteCascade(ctx, id, release); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.invalidate(ctx, release != constant.Empty, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// bookableRoom loads the room and makes sure no other active reservation
// holds it. exceptReservation is ignored in that check.
func (s *serviceImpl) bookableRoom(ctx context.Context, roomID, exceptReservation string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.Status == roomModel.StatusMaintenance || room.Status == roomModel.StatusBlocked {
		return room, errRoomOutOfOrder
	}

	held, err := s.repo.Exist(ctx, ActiveOnRoomFilter(roomID, exceptReservation))
	if err != nil {
		return room, fmt.Errorf("failed to check room reservations: %w", err)
	}

	if held {
		return room, errRoomUnavailable
	}

	return room, nil
}

// ActiveOnRoomFilter matches active reservations holding roomID, other than
// exceptReservation when it is set.
func ActiveOnRoomFilter(roomID, exceptReservation string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.ActiveStatuses,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}

	if exceptReservation != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    exceptReservation,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return filter
}

func (s *serviceImpl) afterWrite(ctx context.Context, eventType string, res dto.ReservationResponse) {
	s.invalidate(ctx, res.RoomID != nil, res.ID)

	if len(s.cfg.Kafka.Brokers) == 0 {
		return
	}

	event := model.Event{
		Type:          eventType,
		ReservationID: res.ID,
		Status:        res.Status,
		GuestName:     res.GuestName,
		RoomNumber:    res.RoomNumber,
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		OccurredAt:    timezone.Now(),
	}

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		message := kafka.Message{Key: event.ReservationID, Value: event}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.Reservation, message); err != nil {
			log.Error().Err(err).Str("event", event.Type).Msg("failed to publish reservation event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, rooms bool, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, CacheCountReservation)

		if rooms {
			shared.InvalidateCaches(c, s.cache, roomService.CacheGetRoom)
			shared.InvalidateCaches(c, s.cache, roomService.CacheGetAllRoom)
			shared.InvalidateCaches(c, s.cache, roomService.CacheCountRoom)
		}
	}()
}

// mapRoomConflict turns a violation of the one-active-reservation-per-room
// index into a conflict.
func mapRoomConflict(err error, msg string) error {
	if failure.IsUniqueViolation(err) {
		return errRoomUnavailable
	}

	return fmt.Errorf("%s: %w", msg, err)
}
