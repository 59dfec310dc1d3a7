package feed

import (
	"errors"
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/role"
	"hotel/internal/feed"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	hub  feed.Hub
	otel otel.Otel
}

func New(hub feed.Hub, otel otel.Otel) Handler {
	return Handler{
		hub:  hub,
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feeds", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFeeds)
		routerGroup.Get("/{feed}", handler.GetFeed)
		routerGroup.Post("/{feed}/refresh", handler.RefreshFeed)
	})
}

// GetFeeds lists the registered feeds.
// @Summary List feeds
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Data[[]string]
// @Router /v1/feeds [get]
// @Security BearerAuth
func (handler *Handler) GetFeeds(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, handler.hub.Feeds())
}

// GetFeed returns the current rows of a feed.
// @Summary Get a feed snapshot
// @Description Returns the shared snapshot. An idle feed is loaded for the duration of the request.
// @Tags Feed
// @Produce json
// @Param feed path string true "Feed name"
// @Success 200 {object} response.Data[feed.Snapshot]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/feeds/{feed} [get]
// @Security BearerAuth
func (handler *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeed")
	defer scope.End()

	name := chi.URLParam(r, constant.RequestParamFeed)

	if err := Authorize(r, name); err != nil {
		response.WithError(w, err)

		return
	}

	snapshot, err := handler.hub.Snapshot(ctx, name)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("feed", name).Msg("failed to get feed")

		response.WithError(w, mapError(err))

		return
	}

	response.WithJSON(w, http.StatusOK, snapshot)
}

// RefreshFeed re-reads a feed and pushes the result to every subscriber.
// @Summary Refresh a feed
// @Tags Feed
// @Produce json
// @Param feed path string true "Feed name"
// @Success 200 {object} response.Data[feed.Snapshot]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/feeds/{feed}/refresh [post]
// @Security BearerAuth
func (handler *Handler) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshFeed")
	defer scope.End()

	name := chi.URLParam(r, constant.RequestParamFeed)

	if err := Authorize(r, name); err != nil {
		response.WithError(w, err)

		return
	}

	snapshot, err := handler.hub.Refresh(ctx, name)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, mapError(err))

		return
	}

	response.WithJSON(w, http.StatusOK, snapshot)
}

// Authorize rejects callers without back-office roles from private feeds.
func Authorize(r *http.Request, name string) error {
	roles, _ := r.Context().Value(constant.ContextKeyUserRoles).([]string)

	if feed.Private(name) && !role.IsAdmin(roles) {
		return failure.ResourceRestrictedError
	}

	return nil
}

func mapError(err error) error {
	if errors.Is(err, feed.ErrUnknownFeed) {
		return failure.NotFound("feed not found") // nolint:wrapcheck
	}

	return failure.InternalError(err) // nolint:wrapcheck
}
