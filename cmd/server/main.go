package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/app"
	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/config"
	"github.com/iliyamo/movie-booking-assistant/internal/handler"
	"github.com/iliyamo/movie-booking-assistant/internal/logger"
	"github.com/iliyamo/movie-booking-assistant/internal/middleware"
	"github.com/iliyamo/movie-booking-assistant/internal/queue"
	"github.com/iliyamo/movie-booking-assistant/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("build app", zap.Error(err))
	}
	defer a.Close()

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	if cfg.RabbitURL != "" {
		c := &queue.Consumer{URL: cfg.RabbitURL, Writer: &queue.LogWriter{Dir: "logs"}, Log: log}
		go c.Run(ctx)
	}
	if cfg.SuggestionInterval > 0 {
		g := &assistant.Suggester{Registry: a.Registry, Interval: cfg.SuggestionInterval, Log: log}
		go g.Run(ctx)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	cookies := middleware.NewCookieStore(cfg.SessionSecret, cfg.Env == "prod", int(cfg.SessionTTL/time.Second))
	router.RegisterRoutes(e, &handler.HealthHandler{Sessions: a.Registry})
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, a.Users, log), cfg.JWTSecret)
	router.RegisterPublic(e, &handler.PublicHandler{Catalog: a.Catalog, Pricing: a.Pricing},
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, handler.NewCustomerHandler(a.Reservations, a.Assistant, log), cfg.JWTSecret)
	router.RegisterChat(e, &handler.ChatHandler{Assistant: a.Assistant}, cfg.JWTSecret,
		middleware.ChatSessions(cookies, a.Registry, log),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("bye")
}
