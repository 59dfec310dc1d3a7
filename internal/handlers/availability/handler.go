package availability

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/service"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/rooms", handler.GetRoomsAvailability)
		routerGroup.Get("/rooms/{id}", handler.GetRoomAvailability)
	})
}

// GetRoomsAvailability resolves the current status of every room.
// @Summary Resolve room availability
// @Description The status comes from active reservations first and falls back to the stored room status.
// @Tags Availability
// @Produce json
// @Param hotel_id query string false "Restrict to one hotel"
// @Success 200 {object} response.Data[[]dto.RoomAvailabilityResponse]
// @Failure 500 {object} response.Error
// @Router /v1/availability/rooms [get]
func (handler *Handler) GetRoomsAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomsAvailability")
	defer scope.End()

	res, err := handler.service.GetAll(ctx, r.URL.Query().Get(roomModel.FieldHotelID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve room availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRoomAvailability resolves the current status of one room.
// @Summary Resolve one room's availability
// @Tags Availability
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomAvailabilityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/rooms/{id} [get]
func (handler *Handler) GetRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomAvailability")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
