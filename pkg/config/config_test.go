package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("MATCH_DEFAULT_LIMIT")
	os.Unsetenv("DB_NAME")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "community_match", cfg.Database.Database)
	assert.Equal(t, 5, cfg.Matching.DefaultLimit)
	assert.Equal(t, 500, cfg.Matching.CatalogPageSize)
	assert.Equal(t, "community-match", cfg.OTEL.ServiceName)
}

func TestLoad_MatchingOverrides(t *testing.T) {
	os.Setenv("MATCH_DEFAULT_LIMIT", "10")
	os.Setenv("MATCH_CATALOG_PAGE_SIZE", "200")
	defer func() {
		os.Unsetenv("MATCH_DEFAULT_LIMIT")
		os.Unsetenv("MATCH_CATALOG_PAGE_SIZE")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 10, cfg.Matching.DefaultLimit)
	assert.Equal(t, 200, cfg.Matching.CatalogPageSize)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Database: "community_match", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=community_match sslmode=disable",
		cfg.DatabaseDSN(),
	)
}

func TestLoad_IgnoresMalformedInt(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-port")
	defer os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
