package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output is where log lines go. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

// InitLogger installs a human readable console logger at trace level. It runs
// before configuration is loaded so config errors are visible.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: Output, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	log.Trace().Msg("Zerolog initialized.")
}

// SetLogLevel applies the configured level. In production it also switches to
// JSON lines tagged with the app name and environment, which is what the log
// shipper indexes.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
	}

	if config.Server.Env == constant.ServerEnvProduction {
		zerolog.TimeFieldFormat = time.RFC3339

		log.Logger = zerolog.New(Output).With().
			Timestamp().
			Str("app", config.App.Name).
			Str("env", config.Server.Env).
			Logger()
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Msg("Log level configured.")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Msgf("%+v", errors.WithStack(err))
}
