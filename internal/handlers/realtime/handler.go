package realtime

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/feed"
	feedHandler "hotel/internal/handlers/feed"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const sessionKeySubscription = "subscription"

type Handler struct {
	hub    feed.Hub
	melody *melody.Melody
	otel   otel.Otel
}

// New wires the websocket sessions to feed subscriptions: a session holds one
// subscription from connect to disconnect and receives every snapshot of it
// as a JSON text message.
func New(hub feed.Hub, m *melody.Melody, otel otel.Otel) Handler {
	handler := Handler{
		hub:    hub,
		melody: m,
		otel:   otel,
	}

	m.HandleConnect(handler.connect)
	m.HandleDisconnect(handler.disconnect)
	m.HandleError(func(s *melody.Session, err error) {
		log.Debug().Err(err).Str("remote", s.Request.RemoteAddr).Msg("websocket session error")
	})

	return handler
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/realtime", func(routerGroup chi.Router) {
		routerGroup.Get("/{feed}", handler.Stream)
	})
}

// Stream upgrades the request and streams snapshots of a feed.
// @Summary Stream a feed over websocket
// @Description Sends the current snapshot on connect and a new one after every change. Browsers may pass the token as access_token.
// @Tags Feed
// @Param feed path string true "Feed name"
// @Param access_token query string false "Access token for clients that cannot set headers"
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/realtime/{feed} [get]
// @Security BearerAuth
func (handler *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, constant.RequestParamFeed)

	if err := feedHandler.Authorize(r, name); err != nil {
		response.WithError(w, err)

		return
	}

	sub, err := handler.hub.Subscribe(r.Context(), name)
	if err != nil {
		if errors.Is(err, feed.ErrUnknownFeed) {
			err = failure.NotFound("feed not found")
		}

		response.WithError(w, err)

		return
	}

	keys := map[string]any{sessionKeySubscription: sub}

	if err := handler.melody.HandleRequestWithKeys(w, r, keys); err != nil {
		// The upgrade failed, so connect never ran and disconnect never will.
		sub.Close()
		log.Warn().Err(err).Str("feed", name).Msg("failed to upgrade websocket")
	}
}

func (handler *Handler) connect(s *melody.Session) {
	sub, ok := subscription(s)
	if !ok {
		_ = s.Close()

		return
	}

	go func() {
		for snapshot := range sub.C() {
			payload, err := json.Marshal(snapshot)
			if err != nil {
				log.Error().Err(err).Str("feed", sub.Feed()).Msg("failed to encode snapshot")

				continue
			}

			if err := s.Write(payload); err != nil {
				return
			}
		}
	}()
}

func (handler *Handler) disconnect(s *melody.Session) {
	if sub, ok := subscription(s); ok {
		sub.Close()
	}
}

func subscription(s *melody.Session) (*feed.Subscription, bool) {
	value, ok := s.Get(sessionKeySubscription)
	if !ok {
		return nil, false
	}

	sub, ok := value.(*feed.Subscription)

	return sub, ok
}
