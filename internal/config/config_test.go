package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("DB_DSN", "postgres://localhost/agro")
	v.Set("JWT_ACCESS_SECRET", "secret")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, "https://wa.me/", cfg.Reports.ShareBaseURL)
	assert.Contains(t, cfg.Reports.ExpenseCategories, "Combustible")
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxLifetime())
	assert.False(t, cfg.IsProduction())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("HTTP_PORT", 9000)
	v.Set("DB_DSN", "postgres://db/agro")
	v.Set("DB_CONN_MAX_LIFETIME", "5m")
	v.Set("JWT_ACCESS_SECRET", "secret")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	v.Set("EXPENSE_CATEGORIES", "Diesel, Peajes")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.DB.MaxLifetime())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, []string{"Diesel", "Peajes"}, cfg.Reports.ExpenseCategories)
}

func TestFromViper_RequiresSecrets(t *testing.T) {
	v := viper.New()
	_, err := fromViper(v)
	assert.EqualError(t, err, "DB_DSN is required")

	v.Set("DB_DSN", "postgres://db/agro")
	_, err = fromViper(v)
	assert.EqualError(t, err, "JWT_ACCESS_SECRET is required")
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList("  "))
	assert.Equal(t, []string{"a", "b"}, parseList("a,,b , "))
}
