package helper

import (
	"net/url"
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write = config.PostgresEndpoint{Host: "primary", Port: "5432", Username: "hotel", Name: "hotel", SSLMode: "disable"}

	parsed, err := url.Parse(connectionString(cfg))
	require.NoError(t, err)
	assert.Empty(t, parsed.Query().Get("x-migrations-table"))

	cfg.DB.Postgres.MigrationTable = "hotel_migrations"

	parsed, err = url.Parse(connectionString(cfg))
	require.NoError(t, err)
	assert.Equal(t, "hotel_migrations", parsed.Query().Get("x-migrations-table"))
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}

func TestRun_UnknownAction(t *testing.T) {
	assert.Error(t, run(nil, "sideways"))
}
