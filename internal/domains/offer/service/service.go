package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Offer=MockOfferService

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/offer/model"
	"hotel/internal/domains/offer/model/dto"
	"hotel/internal/domains/offer/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetOffer    = "offer:get"
	CacheGetAllOffer = "offer:gets"
	CacheCountOffer  = "offer:count"
)

type Offer interface {
	Create(ctx context.Context, req dto.CreateOfferRequest) (dto.OfferResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOffersResponse, error)
	Get(ctx context.Context, id string) (dto.OfferResponse, error)
	// List reads every offer straight from the store, bypassing the cache.
	List(ctx context.Context) ([]dto.OfferResponse, error)
	Update(ctx context.Context, req dto.UpdateOfferRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Offer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Offer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Offer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOfferRequest) (res dto.OfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offer.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	offer := req.ToModel(user)
	if err = validPeriod(offer.ValidFrom, offer.ValidUntil); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, offer); err != nil {
		log.Error().Err(err).Msg("failed to create offer")

		return res, fmt.Errorf("failed to create offer: %w", err)
	}

	s.invalidate(ctx)
	res.FromModel(offer)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOffersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offer.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllOffer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for offers")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get offers")

		return res, fmt.Errorf("failed to get offers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save offers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountOffer, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count offers")

		return res, fmt.Errorf("failed to count offers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save offer count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offer.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetOffer, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	offer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get offer")

		return res, fmt.Errorf("failed to get offer: %w", err)
	}

	if offer.ID == constant.Empty {
		return res, failure.NotFound("offer not found") // nolint:wrapcheck
	}

	res.FromModel(offer)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save offer to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.OfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offer.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list offers")

		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	res = make([]dto.OfferResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOfferRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offer.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check offer existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("offer not found") // nolint:wrapcheck
	}

	from, until := current.ValidFrom, current.ValidUntil
	if req.ValidFrom != nil {
		from = shared.ParseDate(req.ValidFrom)
	}

	if req.ValidUntil != nil {
		until = shared.ParseDate(req.ValidUntil)
	}

	if err = validPeriod(from, until); err != nil {
		return err
	}

	fields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update offer")

		return fmt.Errorf("failed to update offer: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offer.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if offer exists: %w", err)
	}

	if !exist {
		return failure.NotFound("offer not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete offer")

		return fmt.Errorf("failed to delete offer: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetOffer, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete offer from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllOffer)
		shared.InvalidateCaches(c, s.cache, CacheCountOffer)
	}()
}

func validPeriod(from, until *time.Time) error {
	if from != nil && until != nil && until.Before(*from) {
		return failure.BadRequestFromString("valid_until must not be before valid_from") // nolint:wrapcheck
	}

	return nil
}
