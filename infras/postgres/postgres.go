package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxOpenConnections = 10
	maxIdleConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection holds the primary and the read pool. Read is the primary itself
// when no replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	write := connect("write", pg.Write, databaseName(*cfg, pg.Write), pg.MaxRetry, pg.RetryWaitTime)

	if pg.Read.Host == "" {
		log.Info().Msg("no read replica configured, reading from the primary")

		return &Connection{Read: write, Write: write}
	}

	return &Connection{
		Read:  connect("read", pg.Read, databaseName(*cfg, pg.Read), pg.MaxRetry, pg.RetryWaitTime),
		Write: write,
	}
}

func databaseName(cfg config.Config, endpoint config.PostgresEndpoint) string {
	return cfg.DB.Postgres.Prefix + endpoint.Name
}

// WriteDescriptor returns the connection string of the primary. LISTEN
// sessions must run there.
func WriteDescriptor(cfg config.Config) string {
	return descriptor(cfg.DB.Postgres.Write, databaseName(cfg, cfg.DB.Postgres.Write))
}

// descriptor builds a postgres URL. Credentials are escaped so passwords may
// hold any character.
func descriptor(endpoint config.PostgresEndpoint, dbName string) string {
	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	target := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + dbName,
		RawQuery: query.Encode(),
	}

	return target.String()
}

// WithTx runs fn inside a transaction on the primary. The transaction is
// committed when fn returns nil and rolled back otherwise, including on panic.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}

			return
		}

		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(tx)
}

// connect retries until the server answers and exits the process when it
// never does.
func connect(name string, endpoint config.PostgresEndpoint, dbName string, maxRetry, waitSeconds int) *sqlx.DB {
	dsn := descriptor(endpoint, dbName)
	logger := log.With().Str("name", name).Str("host", endpoint.Host).Str("port", endpoint.Port).Str("db", dbName).Logger()

	var err error

	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		var db *sqlx.DB

		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("connected to database")

			return db
		}

		logger.Warn().Err(err).Int("attempt", attempt).Msg("failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Err(err).Msg("giving up connecting to database")

	return nil
}
