package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("TICKET_BASE_PRICE", "")
	t.Setenv("CANCEL_POLICY", "")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12.50, cfg.BasePrice)
	assert.Equal(t, 5.00, cfg.VIPSurcharge)
	assert.Equal(t, 0.08, cfg.TaxRate)
	assert.Equal(t, 10, cfg.MaxTickets)
	assert.Equal(t, CancelSoft, cfg.CancelPolicy)
	assert.Equal(t, DriverFile, cfg.StoreDriver)
	assert.Equal(t, "City Center Cinemas", cfg.DefaultTheater)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("TICKET_BASE_PRICE", "10")
	t.Setenv("TICKET_TAX_RATE", "0.2")
	t.Setenv("CANCEL_POLICY", "HARD")
	t.Setenv("SUGGESTION_INTERVAL", "1m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.BasePrice)
	assert.Equal(t, 0.2, cfg.TaxRate)
	assert.Equal(t, CancelHard, cfg.CancelPolicy)
	assert.Equal(t, time.Minute, cfg.SuggestionInterval)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		description string
		key, value  string
	}{
		{"unknown cancel policy", "CANCEL_POLICY", "archive"},
		{"unknown store driver", "STORE_DRIVER", "mongo"},
		{"negative price", "TICKET_BASE_PRICE", "-1"},
		{"zero ticket bound", "MAX_TICKETS", "0"},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			t.Setenv("APP_ENV", "dev")
			t.Setenv(test.key, test.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestProdRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	rl := LoadRateLimitConfig()
	assert.Equal(t, 1, rl.Capacity)
	assert.Equal(t, 5*time.Second, rl.TTL)
}
