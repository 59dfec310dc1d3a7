package testimonial

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/testimonial/model"
	"hotel/internal/domains/testimonial/model/dto"
	"hotel/internal/domains/testimonial/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Testimonial
	otel    otel.Otel
}

func New(service service.Testimonial, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/testimonials", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTestimonial)
		routerGroup.Get("/", handler.GetTestimonials)
		routerGroup.Get("/{id}", handler.GetTestimonialByID)
		routerGroup.Patch("/{id}", handler.UpdateTestimonial)
		routerGroup.Delete("/{id}", handler.DeleteTestimonial)
	})
}

// CreateTestimonial creates a testimonial.
// @Summary Create a testimonial
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param request body dto.CreateTestimonialRequest true "Testimonial"
// @Success 201 {object} response.Data[dto.TestimonialResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials [post]
// @Security BearerAuth
func (handler *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTestimonial")
	defer scope.End()

	var req dto.CreateTestimonialRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create testimonial")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTestimonials lists testimonials.
// @Summary Get testimonials
// @Tags Testimonial
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel_id"
// @Param approved query boolean false "Filter by approved"
// @Param search query string false "Search by guest_name"
// @Success 200 {object} response.Data[dto.GetTestimonialsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/testimonials [get]
func (handler *Handler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestimonials")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.AllowSortBy(constant.FieldCreatedAt, constant.FieldCreatedAt, model.FieldRating)

	res, err := handler.service.GetAll(ctx, queryParams, filter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get testimonials")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTestimonialByID returns one testimonial.
// @Summary Get a testimonial by ID
// @Tags Testimonial
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Data[dto.TestimonialResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/{id} [get]
func (handler *Handler) GetTestimonialByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestimonialByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateTestimonial updates a testimonial.
// @Summary Update a testimonial
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param request body dto.UpdateTestimonialRequest true "Fields to update"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTestimonial")
	defer scope.End()

	var req dto.UpdateTestimonialRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update testimonial")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Testimonial updated successfully")
}

// DeleteTestimonial deletes a testimonial.
// @Summary Delete a testimonial
// @Tags Testimonial
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/testimonials/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTestimonial")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete testimonial")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Testimonial deleted successfully")
}

func filter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldHotelID} {
		if value := query.Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	for _, field := range []string{model.FieldApproved} {
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
			Field:    model.FieldGuestName,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
