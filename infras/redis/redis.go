package redis

import (
	"context"
	"net"
	"time"

	"hotel/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary node and pings it, retrying with a growing
// pause. The cache backs reads only, but every service expects a working
// client, so startup fails when Redis stays unreachable.
func New(config *config.Config) *goRedis.Client {
	settings := config.Cache.Redis
	timeout := time.Duration(settings.TimeoutMillis) * time.Millisecond

	client := goRedis.NewClient(&goRedis.Options{
		Addr:         net.JoinHostPort(settings.Primary.Host, settings.Primary.Port),
		Password:     settings.Primary.Password,
		DB:           settings.Primary.DB,
		PoolSize:     settings.PoolSize,
		DialTimeout:  timeout * 4,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	logger := log.With().
		Str("addr", client.Options().Addr).
		Int("db", settings.Primary.DB).
		Logger()

	var err error

	for attempt := 0; attempt <= settings.MaxRetry; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		if err = client.Ping(context.Background()).Err(); err == nil {
			logger.Info().Msg("Connected to Redis")

			return client
		}

		logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Redis ping failed")
	}

	logger.Fatal().Err(err).Msg("Failed to connect to Redis")

	return nil
}
