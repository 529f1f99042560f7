package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/config"
	"github.com/iliyamo/movie-booking-assistant/internal/repository"
)

func TestBuildWithFileStore(t *testing.T) {
	cfg := config.Config{
		StoreDriver:    config.DriverFile,
		DataDir:        t.TempDir(),
		CancelPolicy:   config.CancelHard,
		BasePrice:      10,
		VIPSurcharge:   2,
		TaxRate:        0,
		MaxTickets:     4,
		DefaultTheater: "Grand Arena",
		SessionTTL:     time.Minute,
	}
	a, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, repository.HardCancel, a.Reservations.Policy())
	assert.InDelta(t, 24.0, a.Pricing.Price(2, "VIP"), 1e-9)

	s := a.Registry.Create("")
	reply := a.Assistant.Respond(context.Background(), s, "book Heartstrings")
	assert.Contains(t, reply, "Heartstrings")

	a.Assistant.Respond(context.Background(), s, "today")
	a.Assistant.Respond(context.Background(), s, "7pm")
	reply = a.Assistant.Respond(context.Background(), s, "5 tickets")
	assert.Contains(t, reply, "between 1 and 4 tickets")
}
