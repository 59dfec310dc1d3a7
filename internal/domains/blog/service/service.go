package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Blog=MockBlogService

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/blog/model"
	"hotel/internal/domains/blog/model/dto"
	"hotel/internal/domains/blog/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetBlog    = "blog:get"
	CacheGetAllBlog = "blog:gets"
	CacheCountBlog  = "blog:count"
)

type Blog interface {
	Create(ctx context.Context, req dto.CreateBlogRequest) (dto.BlogResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlogsResponse, error)
	Get(ctx context.Context, id string) (dto.BlogResponse, error)
	// List reads every blog straight from the store, bypassing the cache.
	List(ctx context.Context) ([]dto.BlogResponse, error)
	Update(ctx context.Context, req dto.UpdateBlogRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Blog
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Blog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Blog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlogRequest) (res dto.BlogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.ensureSlugFree(ctx, req.Slug); err != nil {
		return res, err
	}

	blog := req.ToModel(user)
	if err = s.repo.Insert(ctx, blog); err != nil {
		log.Error().Err(err).Msg("failed to create blog")

		return res, failure.ConflictOnDuplicate(fmt.Errorf("failed to create blog: %w", err), "blog slug already exists")
	}

	s.invalidate(ctx)
	res.FromModel(blog)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBlog, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for blogs")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blogs")

		return res, fmt.Errorf("failed to get blogs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blogs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountBlog, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count blogs")

		return res, fmt.Errorf("failed to count blogs: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blog count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BlogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetBlog, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	blog, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog")

		return res, fmt.Errorf("failed to get blog: %w", err)
	}

	if blog.ID == constant.Empty {
		return res, failure.NotFound("blog not found") // nolint:wrapcheck
	}

	res.FromModel(blog)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blog to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.BlogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list blogs")

		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	res = make([]dto.BlogResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBlogRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check blog existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("blog not found") // nolint:wrapcheck
	}

	if req.Slug != nil && *req.Slug != current.Slug {
		if err = s.ensureSlugFree(ctx, *req.Slug); err != nil {
			return err
		}
	}

	fields := shared.TransformFields(req, user)

	if req.Published != nil && *req.Published && current.PublishedAt == nil {
		fields[model.FieldPublishedAt] = timezone.Now()
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update blog")

		return failure.ConflictOnDuplicate(fmt.Errorf("failed to update blog: %w", err), "blog slug already exists")
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".blog.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if blog exists: %w", err)
	}

	if !exist {
		return failure.NotFound("blog not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete blog")

		return fmt.Errorf("failed to delete blog: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetBlog, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete blog from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllBlog)
		shared.InvalidateCaches(c, s.cache, CacheCountBlog)
	}()
}

func (s *serviceImpl) ensureSlugFree(ctx context.Context, slug string) error {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check blog slug: %w", err)
	}

	if exist {
		return failure.Conflict("blog slug already exists") // nolint:wrapcheck
	}

	return nil
}
