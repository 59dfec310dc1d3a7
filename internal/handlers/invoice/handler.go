package invoice

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
	})
}

// GetInvoices lists the recorded invoices.
// @Summary Get all invoices
// @Tags Invoice
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param reservation_id query string false "Filter by reservation"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.AllowSortBy(model.FieldIssuedAt, model.FieldIssuedAt, model.FieldInvoiceNumber, model.FieldAmount)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if value := r.URL.Query().Get(model.FieldReservationID); value != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldReservationID,
			Value:    value,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
