package config_test

import (
	"testing"
	"time"

	"hr-portal/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("NEXTAUTH_SECRET", "test-secret")
		t.Setenv("DATABASE_DRIVER", "sqlite")
		t.Setenv("DATABASE_DSN", "file::memory:")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("FIXTURES_DELAY", "250ms")

		cfg, err := config.Load("")
		require.NoError(t, err)

		assert.Equal(t, "test-secret", cfg.Session.Secret)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
		assert.Equal(t, 250*time.Millisecond, cfg.Fixtures.Delay)
		assert.Equal(t, 12, cfg.Dashboard.VacationDaysPerYear)
		assert.Equal(t, "/", cfg.Session.LandingPath)
	})

	t.Run("negative missing secret", func(t *testing.T) {
		t.Setenv("NEXTAUTH_SECRET", "")
		t.Setenv("DATABASE_DSN", "file::memory:")

		_, err := config.Load("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "NEXTAUTH_SECRET")
	})

	t.Run("negative unknown driver", func(t *testing.T) {
		t.Setenv("NEXTAUTH_SECRET", "s")
		t.Setenv("DATABASE_DRIVER", "oracle")
		t.Setenv("DATABASE_DSN", "x")

		_, err := config.Load("")
		assert.Error(t, err)
	})
}
