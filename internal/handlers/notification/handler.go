package notification

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/model/dto"
	"hotel/internal/domains/notification/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Post("/devices", handler.RegisterDevice)
		routerGroup.Get("/devices", handler.GetDevices)
		routerGroup.Delete("/devices/{token}", handler.UnregisterDevice)
		routerGroup.Post("/broadcast", handler.Broadcast)
	})
}

// RegisterDevice stores a push token for the signed in user.
// @Summary Register a device for push notifications
// @Tags Notification
// @Accept json
// @Produce json
// @Param request body dto.RegisterDeviceRequest true "Device"
// @Success 201 {object} response.Data[dto.DeviceResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/devices [post]
// @Security BearerAuth
func (handler *Handler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterDevice")
	defer scope.End()

	var req dto.RegisterDeviceRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.RegisterDevice(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register device")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetDevices lists registered devices.
// @Summary Get registered devices
// @Tags Notification
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param user_id query string false "Filter by user"
// @Param platform query string false "Filter by platform"
// @Success 200 {object} response.Data[dto.GetDevicesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/notifications/devices [get]
// @Security BearerAuth
func (handler *Handler) GetDevices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDevices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.AllowSortBy(constant.FieldCreatedAt, constant.FieldCreatedAt, model.FieldPlatform)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldUserID, model.FieldPlatform} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Value:    value,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			})
		}
	}

	res, err := handler.service.GetDevices(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get devices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UnregisterDevice removes a push token.
// @Summary Unregister a device
// @Tags Notification
// @Produce json
// @Param token path string true "Push token"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/devices/{token} [delete]
// @Security BearerAuth
func (handler *Handler) UnregisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnregisterDevice")
	defer scope.End()

	token := chi.URLParam(r, constant.RequestParamToken)

	if err := handler.service.UnregisterDevice(ctx, token); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unregister device")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Device unregistered successfully")
}

// Broadcast sends a push notification to registered devices.
// @Summary Broadcast a push notification
// @Description Sends to every registered device, or to staff devices only, in batches of at most 100.
// @Tags Notification
// @Accept json
// @Produce json
// @Param request body dto.BroadcastRequest true "Notification"
// @Success 200 {object} response.Data[dto.BroadcastResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/broadcast [post]
// @Security BearerAuth
func (handler *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Broadcast")
	defer scope.End()

	var req dto.BroadcastRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Broadcast(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to broadcast notification")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Notification broadcast by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
