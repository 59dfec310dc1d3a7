package offer

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/offer/model"
	"hotel/internal/domains/offer/model/dto"
	"hotel/internal/domains/offer/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Offer
	otel    otel.Otel
}

func New(service service.Offer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/offers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOffer)
		routerGroup.Get("/", handler.GetOffers)
		routerGroup.Get("/{id}", handler.GetOfferByID)
		routerGroup.Patch("/{id}", handler.UpdateOffer)
		routerGroup.Delete("/{id}", handler.DeleteOffer)
	})
}

// CreateOffer creates a offer.
// @Summary Create a offer
// @Tags Offer
// @Accept json
// @Produce json
// @Param request body dto.CreateOfferRequest true "Offer"
// @Success 201 {object} response.Data[dto.OfferResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers [post]
// @Security BearerAuth
func (handler *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOffer")
	defer scope.End()

	var req dto.CreateOfferRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create offer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetOffers lists offers.
// @Summary Get offers
// @Tags Offer
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel_id"
// @Param code query string false "Filter by code"
// @Param active query boolean false "Filter by active"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Data[dto.GetOffersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/offers [get]
func (handler *Handler) GetOffers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOffers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.AllowSortBy(model.FieldValidUntil, model.FieldValidUntil, model.FieldTitle, model.FieldDiscountPercent, constant.FieldCreatedAt)

	res, err := handler.service.GetAll(ctx, queryParams, filter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get offers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetOfferByID returns one offer.
// @Summary Get a offer by ID
// @Tags Offer
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} response.Data[dto.OfferResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers/{id} [get]
func (handler *Handler) GetOfferByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfferByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateOffer updates a offer.
// @Summary Update a offer
// @Tags Offer
// @Accept json
// @Produce json
// @Param id path string true "Offer ID"
// @Param request body dto.UpdateOfferRequest true "Fields to update"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOffer")
	defer scope.End()

	var req dto.UpdateOfferRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Offer updated successfully")
}

// DeleteOffer deletes a offer.
// @Summary Delete a offer
// @Tags Offer
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOffer")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Offer deleted successfully")
}

func filter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldHotelID, model.FieldCode} {
		if value := query.Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	for _, field := range []string{model.FieldActive} {
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
