package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/push"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/model/dto"
	"hotel/internal/domains/notification/repository"
	"hotel/internal/domains/role"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	// RegisterDevice stores a push token for the current user. Registering a
	// known token moves it to the current user.
	RegisterDevice(ctx context.Context, req dto.RegisterDeviceRequest) (dto.DeviceResponse, error)
	UnregisterDevice(ctx context.Context, token string) error
	GetDevices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDevicesResponse, error)
	Broadcast(ctx context.Context, req dto.BroadcastRequest) (dto.BroadcastResponse, error)
}

type serviceImpl struct {
	repo repository.DeviceToken
	push push.Push
	otel otel.Otel
}

func New(repo repository.DeviceToken, push push.Push, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		push: push,
		otel: otel,
	}
}

func (s *serviceImpl) RegisterDevice(ctx context.Context, req dto.RegisterDeviceRequest) (res dto.DeviceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterDevice")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	device := req.ToModel(user)

	current, err := s.repo.Get(ctx, tokenFilter(req.Token))
	if err != nil {
		log.Error().Err(err).Msg("failed to get device token")

		return res, fmt.Errorf("failed to get device token: %w", err)
	}

	if current.ID == constant.Empty {
		if err = s.repo.Insert(ctx, device); err != nil {
			log.Error().Err(err).Msg("failed to register device token")

			return res, fmt.Errorf("failed to register device token: %w", err)
		}

		res.FromModel(device)

		return res, nil
	}

	fields := map[string]any{
		model.FieldUserID:        device.UserID,
		model.FieldPlatform:      device.Platform,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, tokenFilter(req.Token)); err != nil {
		log.Error().Err(err).Msg("failed to update device token")

		return res, fmt.Errorf("failed to update device token: %w", err)
	}

	current.UserID = device.UserID
	current.Platform = device.Platform
	current.ModifiedAt = device.ModifiedAt
	current.ModifiedBy = user

	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) UnregisterDevice(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnregisterDevice")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	roles, _ := ctx.Value(constant.ContextKeyUserRoles).([]string)

	current, err := s.repo.Get(ctx, tokenFilter(token))
	if err != nil {
		return fmt.Errorf("failed to get device token: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("device token not found") // nolint:wrapcheck
	}

	owned := current.UserID != nil && *current.UserID == user
	if !owned && !role.HasAny(roles, constant.RoleOwner) {
		return failure.ResourceRestrictedError
	}

	if err = s.repo.Delete(ctx, tokenFilter(token)); err != nil {
		log.Error().Err(err).Msg("failed to delete device token")

		return fmt.Errorf("failed to delete device token: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetDevices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDevicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDevices")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count device tokens: %w", err)
	}

	devices, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get device tokens")

		return res, fmt.Errorf("failed to get device tokens: %w", err)
	}

	res.FromModels(devices, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Broadcast(ctx context.Context, req dto.BroadcastRequest) (res dto.BroadcastResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Broadcast")
	defer scope.End()
	defer scope.TraceIfError(err)

	var tokens []string

	if req.Audience == model.AudienceStaff {
		tokens, err = s.repo.StaffTokens(ctx)
	} else {
		tokens, err = s.repo.Tokens(ctx)
	}

	if err != nil {
		return res, fmt.Errorf("failed to get recipients: %w", err)
	}

	if len(tokens) == 0 {
		return res, nil
	}

	result, err := s.push.Send(ctx, req.Messages(tokens))
	res.FromResult(len(tokens), result)

	s.prune(ctx, result.InvalidTokens)

	if err != nil {
		if result.Sent == 0 {
			return res, fmt.Errorf("failed to send notifications: %w", err)
		}

		log.Warn().Err(err).Int("failed", result.Failed).Msg("some notification batches failed")
	}

	return res, nil
}

// prune forgets tokens the gateway reported as no longer registered.
func (s *serviceImpl) prune(ctx context.Context, tokens []string) {
	if len(tokens) == 0 {
		return
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldToken,
				Value:    tokens,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Warn().Err(err).Int("tokens", len(tokens)).Msg("failed to prune unregistered device tokens")
	}
}

func tokenFilter(token string) gDto.FilterGroup {
	return shared.FilterByID(token, model.FieldToken, model.TableName)
}
