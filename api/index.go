package handler

import (
	"net/http"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/transport/http/response"

	"github.com/rs/zerolog/log"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	handler, err := di.InitializeService()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize service")

		response.WithError(w, err)

		return
	}

	handler.ServeHTTP(w, r)
}
