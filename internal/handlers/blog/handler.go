package blog

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/blog/model"
	"hotel/internal/domains/blog/model/dto"
	"hotel/internal/domains/blog/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Blog
	otel    otel.Otel
}

func New(service service.Blog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blogs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlog)
		routerGroup.Get("/", handler.GetBlogs)
		routerGroup.Get("/{id}", handler.GetBlogByID)
		routerGroup.Patch("/{id}", handler.UpdateBlog)
		routerGroup.Delete("/{id}", handler.DeleteBlog)
	})
}

// CreateBlog creates a blog.
// @Summary Create a blog
// @Tags Blog
// @Accept json
// @Produce json
// @Param request body dto.CreateBlogRequest true "Blog"
// @Success 201 {object} response.Data[dto.BlogResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs [post]
// @Security BearerAuth
func (handler *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlog")
	defer scope.End()

	var req dto.CreateBlogRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create blog")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBlogs lists blogs.
// @Summary Get blogs
// @Tags Blog
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param slug query string false "Filter by slug"
// @Param author query string false "Filter by author"
// @Param published query boolean false "Filter by published"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Data[dto.GetBlogsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/blogs [get]
func (handler *Handler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.AllowSortBy(constant.FieldCreatedAt, constant.FieldCreatedAt, model.FieldTitle, model.FieldPublishedAt)

	res, err := handler.service.GetAll(ctx, queryParams, filter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blogs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBlogByID returns one blog.
// @Summary Get a blog by ID
// @Tags Blog
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Data[dto.BlogResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [get]
func (handler *Handler) GetBlogByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateBlog updates a blog.
// @Summary Update a blog
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Blog ID"
// @Param request body dto.UpdateBlogRequest true "Fields to update"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBlog")
	defer scope.End()

	var req dto.UpdateBlogRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update blog")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Blog updated successfully")
}

// DeleteBlog deletes a blog.
// @Summary Delete a blog
// @Tags Blog
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlog")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete blog")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Blog deleted successfully")
}

func filter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldSlug, model.FieldAuthor} {
		if value := query.Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	for _, field := range []string{model.FieldPublished} {
		if value := shared.ConvertStringToBool(query.Get(field)); value != nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    *value,
				Table:    model.TableName,
			})
		}
	}

	if search := query.Get("search"); search != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
