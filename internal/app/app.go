// Package app wires the stores, repositories and the assistant from a
// Config.  Both the HTTP server and the terminal REPL start from here.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/config"
	"github.com/iliyamo/movie-booking-assistant/internal/database"
	"github.com/iliyamo/movie-booking-assistant/internal/pricing"
	"github.com/iliyamo/movie-booking-assistant/internal/repository"
	"github.com/iliyamo/movie-booking-assistant/internal/service"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

// App holds the long-lived components.
type App struct {
	Catalog      *repository.CatalogRepo
	Reservations *repository.ReservationRepo
	Preferences  *repository.PreferenceRepo
	Users        *repository.UserRepo
	Pricing      pricing.Engine
	Assistant    *assistant.Assistant
	Registry     *assistant.Registry

	db *sql.DB
}

// Build opens the configured document store and assembles the App.
// Booking events go to RabbitMQ when cfg.RabbitURL is set.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	docs, db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	policy := repository.SoftCancel
	if cfg.CancelPolicy == config.CancelHard {
		policy = repository.HardCancel
	}
	a := &App{
		Catalog:      repository.NewCatalogRepo(docs, log),
		Reservations: repository.NewReservationRepo(docs, policy),
		Preferences:  repository.NewPreferenceRepo(docs),
		Users:        repository.NewUserRepo(docs),
		Pricing: pricing.Engine{
			BasePrice:    cfg.BasePrice,
			VIPSurcharge: cfg.VIPSurcharge,
			TaxRate:      cfg.TaxRate,
		},
		Registry: assistant.NewRegistry(cfg.MaxTickets, cfg.SessionTTL),
		db:       db,
	}

	var events assistant.EventPublisher
	if cfg.RabbitURL != "" {
		events = service.NewQueuePublisher(cfg.RabbitURL, log)
	}
	a.Assistant = assistant.New(assistant.Deps{
		Catalog:            a.Catalog,
		Reservations:       a.Reservations,
		Preferences:        a.Preferences,
		Pricing:            &a.Pricing,
		Events:             events,
		Log:                log,
		DefaultTheater:     cfg.DefaultTheater,
		SurfaceSuggestions: cfg.SurfaceSuggestions,
	})
	log.Info("store ready", zap.String("driver", cfg.StoreDriver), zap.String("cancel_policy", string(policy)))
	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Documents, *sql.DB, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := database.Open(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		docs, err := store.NewMySQL(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("prepare documents table: %w", err)
		}
		return docs, db, nil
	default:
		docs, err := store.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open data dir: %w", err)
		}
		return docs, nil, nil
	}
}
