package feed

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// NewScheduler returns the cron instance that runs the poll entries. An entry
// still running when its next tick arrives is skipped rather than stacked.
func NewScheduler() *cron.Cron {
	logger := cronLogger{}

	return cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
