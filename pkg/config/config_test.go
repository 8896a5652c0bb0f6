package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("FRONTEND_URL", "https://shop.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.Invite.FrontendURL)
	assert.False(t, cfg.Catalog.PublicItemRoutes)
	assert.Equal(t, 5000, cfg.Catalog.DerivedSortLimit)
	assert.Contains(t, cfg.DB.GetDSN(), "dbname=")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/catalog.db")
	t.Setenv("CATALOG_PUBLIC_ITEM_ROUTES", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DB_CONN_MAX_LIFETIME", "15m")
	t.Setenv("DB_LOG_LEVEL", "silent")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/catalog.db", cfg.DB.GetDSN())
	assert.True(t, cfg.Catalog.PublicItemRoutes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 15*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongodb")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionNeedsSigningKey(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("APP_ENV", "production")

	t.Setenv("JWT_SIGNING_KEY", DefaultJWTSigningKey)
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SIGNING_KEY")

	t.Setenv("JWT_SIGNING_KEY", "")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("JWT_SIGNING_KEY", "a-real-key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-key", cfg.JWT.SigningKey)
}
