package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 20*time.Minute, cfg.StuckPayoutThreshold)
		assert.Equal(t, 100, cfg.RateLimitRequests)
		assert.NoError(t, cfg.RequireTables())
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("Missing Tables", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "dynamodb")
		t.Setenv("DYNAMODB_LEDGER_TABLE_NAME", "ledger")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Error(t, cfg.RequireTables())
		assert.Error(t, cfg.RequireQueue())
	})
}
