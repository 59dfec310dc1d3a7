package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"context"
	"fmt"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

// auditFields is the number of audit columns TransformFields always adds.
const auditFields = 2

// User manages staff and guest accounts on behalf of an administrator.
type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user."+op)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.scope(ctx, "Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.Exist(ctx, shared.FilterByID(req.Email, model.FieldEmail, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	created := req.ToModel(actor, hashed)
	if err = s.repo.Insert(ctx, created); err != nil {
		log.Error().Err(err).Str("email", created.Email).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	s.invalidate(ctx)
	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.scope(ctx, "GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	key := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	return shared.Cached(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (page dto.GetUsersResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return page, fmt.Errorf("failed to count users: %w", err)
		}

		models, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get users")

			return page, fmt.Errorf("failed to get users: %w", err)
		}

		page.FromModels(models, total, req.Limit)

		return page, nil
	})
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.scope(ctx, "Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	key := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	return shared.Cached(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (int, error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count users")

			return 0, fmt.Errorf("failed to count users: %w", err)
		}

		return total, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.scope(ctx, "Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	return shared.Cached(ctx, s.cache, shared.BuildCacheKey(cacheGetUser, id), s.cfg.Cache.TTL, func(ctx context.Context) (found dto.UserResponse, err error) {
		user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

			return found, fmt.Errorf("failed to get user: %w", err)
		}

		if user.ID == constant.Empty {
			return found, failure.NotFound("user not found") // nolint:wrapcheck
		}

		found.FromModel(user)

		return found, nil
	})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.scope(ctx, "Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, shared.TransformFields(req, actor), id)
}

// UpdateProfile applies a user's change to their own account.
func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) (err error) {
	ctx, scope := s.scope(ctx, "UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if id == constant.Empty {
		return failure.Unauthorized("user not authenticated") // nolint:wrapcheck
	}

	return s.update(ctx, shared.TransformFields(req, id), id)
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, id string) error {
	if len(fields) <= auditFields {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter, err := s.existing(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.scope(ctx, "Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor, _ := ctx.Value(constant.ContextKeyUserID).(string); actor == id {
		return failure.BadRequestFromString("you cannot delete your own account") // nolint:wrapcheck
	}

	filter, err := s.existing(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// existing returns the id filter of a user, or 404 when there is none.
func (s *serviceImpl) existing(ctx context.Context, id string) (gDto.FilterGroup, error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to check if user exists")

		return filter, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return filter, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return filter, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
				log.Error().Err(err).Str("user_id", id).Msg("failed to delete user from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}
