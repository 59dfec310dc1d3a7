package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"hotel/shared/constant"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Timeout  struct {
			ReadSeconds  int `envconfig:"READ_SECONDS" default:"15"`
			WriteSeconds int `envconfig:"WRITE_SECONDS" default:"30"`
		} `envconfig:"TIMEOUT"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
			PoolSize      int `envconfig:"POOL_SIZE"      default:"20"`
			MaxRetry      int `envconfig:"MAX_RETRY"      default:"3"`
			TimeoutMillis int `envconfig:"TIMEOUT_MILLIS" default:"500"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"hotel-worker"`
		Topic         struct {
			Reservation string `envconfig:"RESERVATION" default:"reservation.events"`
		} `envconfig:"TOPIC"`
		SASL struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Sync struct {
		PollIntervalSeconds int    `envconfig:"POLL_INTERVAL_SECONDS" default:"5"`
		Channel             string `envconfig:"CHANNEL" default:"row_changes"`
		MinReconnectSeconds int    `envconfig:"MIN_RECONNECT_SECONDS" default:"1"`
		MaxReconnectSeconds int    `envconfig:"MAX_RECONNECT_SECONDS" default:"30"`
		PingIntervalSeconds int    `envconfig:"PING_INTERVAL_SECONDS" default:"90"`
		FetchTimeoutSeconds int    `envconfig:"FETCH_TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"SYNC"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			Region          string `envconfig:"REGION" default:"auto"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			InvoiceDir      string `envconfig:"INVOICE_DIR" default:"invoices"`
		} `envconfig:"S3"`
		Cloudinary struct {
			CloudName string `envconfig:"CLOUD_NAME"`
			APIKey    string `envconfig:"API_KEY"`
			APISecret string `envconfig:"API_SECRET"`
			Folder    string `envconfig:"FOLDER" default:"uploads"`
		} `envconfig:"CLOUDINARY"`
		Push struct {
			GatewayURL     string `envconfig:"GATEWAY_URL" default:"https://exp.host/--/api/v2/push/send"`
			AccessToken    string `envconfig:"ACCESS_TOKEN"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
		} `envconfig:"PUSH"`
	} `envconfig:"EXTERNAL"`
}

// PostgresEndpoint addresses one Postgres server. The read endpoint may be
// left empty to send reads to the primary.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init loads .env when present and then the process environment. It runs
// once; later calls return the first result.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Err(err).Msg("no .env file, using the process environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("process environment: %w", err)

			return
		}

		if err := conf.Validate(); err != nil {
			if conf.IsProduction() {
				loadErr = err

				return
			}

			log.Warn().Err(err).Msg("incomplete configuration")
		}

		log.Info().Str("env", conf.Server.Env).Msg("configuration loaded")
	})

	return loadErr
}

// Get returns the loaded configuration and exits the process when it cannot
// be loaded.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	return &conf
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == constant.ServerEnvProduction
}

// Validate reports settings without which tokens cannot be signed or rows
// stored. Production refuses to start without them.
func (c *Config) Validate() error {
	var errs []error

	required := map[string]string{
		"JWT_ACCESS_SECRET":        c.JWT.AccessSecret,
		"JWT_REFRESH_SECRET":       c.JWT.RefreshSecret,
		"DB_POSTGRES_WRITE_HOST":   c.DB.Postgres.Write.Host,
		"CACHE_REDIS_PRIMARY_HOST": c.Cache.Redis.Primary.Host,
	}

	for _, name := range slices.Sorted(maps.Keys(required)) {
		if required[name] == "" {
			errs = append(errs, fmt.Errorf("%s is not set", name))
		}
	}

	if c.JWT.AccessSecret != "" && c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("JWT access and refresh secrets must differ"))
	}

	return errors.Join(errs...)
}
