package service

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/model/dto"
	reservationModel "hotel/internal/domains/reservation/model"
	reservationRepository "hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	// GetAll resolves every room, optionally restricted to one hotel.
	GetAll(ctx context.Context, hotelID string) ([]dto.RoomAvailabilityResponse, error)
	Get(ctx context.Context, roomID string) (dto.RoomAvailabilityResponse, error)
}

type serviceImpl struct {
	roomRepo        roomRepository.Room
	reservationRepo reservationRepository.Reservation
	otel            otel.Otel
}

func New(roomRepo roomRepository.Room, reservationRepo reservationRepository.Reservation, otel otel.Otel) Availability {
	return &serviceImpl{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		otel:            otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, hotelID string) (res []dto.RoomAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomFilter := gDto.FilterGroup{}
	if hotelID != constant.Empty {
		roomFilter = shared.FilterByID(hotelID, roomModel.FieldHotelID, roomModel.TableName)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldNumber, SortDir: gDto.SortDirAsc}, roomFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for availability")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	active, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{}, activeFilter(constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active reservations")

		return nil, fmt.Errorf("failed to get active reservations: %w", err)
	}

	return dto.FromModels(model.Resolve(rooms, active)), nil
}

func (s *serviceImpl) Get(ctx context.Context, roomID string) (res dto.RoomAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	active, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{}, activeFilter(roomID))
	if err != nil {
		return res, fmt.Errorf("failed to get active reservations: %w", err)
	}

	resolved := model.Resolve([]roomModel.Room{room}, active)
	res.FromModel(resolved[0])

	return res, nil
}

func activeFilter(roomID string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    reservationModel.FieldStatus,
				Value:    reservationModel.ActiveStatuses,
				Operator: gDto.FilterOperatorIn,
				Table:    reservationModel.TableName,
			},
			gDto.Filter{
				Field:    reservationModel.FieldRoomID,
				Operator: gDto.FilterIsNotNull,
				Table:    reservationModel.TableName,
			},
		},
	}

	if roomID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    reservationModel.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    reservationModel.TableName,
		})
	}

	return filter
}
