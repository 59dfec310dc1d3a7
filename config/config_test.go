package config_test

import (
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
)

func complete() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.DB.Postgres.Write.Host = "localhost"
	cfg.Cache.Redis.Primary.Host = "localhost"

	return cfg
}

func TestValidate(t *testing.T) {
	assert.NoError(t, complete().Validate())

	missing := complete()
	missing.JWT.RefreshSecret = ""
	missing.DB.Postgres.Write.Host = ""

	err := missing.Validate()
	assert.ErrorContains(t, err, "JWT_REFRESH_SECRET is not set")
	assert.ErrorContains(t, err, "DB_POSTGRES_WRITE_HOST is not set")

	shared := complete()
	shared.JWT.RefreshSecret = shared.JWT.AccessSecret
	assert.ErrorContains(t, shared.Validate(), "must differ")
}

func TestIsProduction(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, cfg.IsProduction())

	cfg.Server.Env = "production"
	assert.True(t, cfg.IsProduction())
}

func TestGet_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_APP_NAME", "hotel-test")
	t.Setenv("SERVER_PORT", "9090")

	cfg := config.Get()

	assert.Equal(t, "hotel-test", cfg.App.Name)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 15, cfg.JWT.AccessExpireMin)
}
