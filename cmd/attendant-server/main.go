package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro-attendant/internal/attendant"
	"bistro-attendant/internal/catalog"
	"bistro-attendant/internal/common/config"
	"bistro-attendant/internal/common/database"
	"bistro-attendant/internal/common/genai"
	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/common/observability"
	"bistro-attendant/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLogger.Sync() }()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting attendant server", map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	location, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.WithError(err).Error("invalid business timezone", nil)
		os.Exit(1)
	}

	meter, err := observability.NewMeter(cfg.App.Name, cfg.App.Version)
	if err != nil {
		log.WithError(err).Error("failed to initialize metrics", nil)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = meter.Shutdown(shutdownCtx)
	}()

	var db *sql.DB
	err = retryWithBackoff(ctx, func() error {
		conn, err := database.NewPostgresConnection(ctx, cfg.Database.Postgres, log)
		if err != nil {
			return err
		}
		db = conn
		return nil
	}, 5, 2*time.Second, log, "postgres connection")
	if err != nil {
		log.WithError(err).Error("could not connect to postgres", nil)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	repo := catalog.NewRepository(db, log)
	store := catalog.NewStore(repo, log)

	err = retryWithBackoff(ctx, func() error {
		warmCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return store.Warm(warmCtx)
	}, 3, 2*time.Second, log, "catalog warm")
	if err != nil {
		// Serve anyway; /ready stays 503 and /chat answers with a
		// friendly message until a later warm succeeds.
		log.WithError(err).Warn("catalog warm failed at startup", nil)
	}

	var cache *attendant.AnswerCache
	redisClient, err := database.NewRedisClient(ctx, cfg.Database.Redis, log)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, answer cache disabled", nil)
	} else {
		defer func() { _ = redisClient.Close() }()
		cache = attendant.NewAnswerCache(redisClient, cfg.Database.Redis.CacheTTL, log)
	}

	genaiClient := genai.NewClient(cfg.GenAI, log)
	service := attendant.NewService(
		store,
		attendant.NewClassifier(genaiClient, log),
		attendant.NewComposer(cfg.Business.ReservationLink),
		attendant.NewHumanizer(genaiClient, log),
		cache,
		location,
		log,
	)

	srv := server.New(cfg.Server, service, log)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.WithError(err).Error("http server failed", nil)
		os.Exit(1)
	case <-ctx.Done():
		log.Info("shutdown signal received", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown was not clean", nil)
	}
	log.Info("attendant server stopped", nil)
}

// retryWithBackoff runs the operation until it succeeds, the attempts are
// exhausted or the context is cancelled. The delay doubles per attempt.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int,
	initialDelay time.Duration, log logger.Logger, name string) error {
	delay := initialDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = operation(); err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		log.Warn("operation failed, retrying", map[string]interface{}{
			"operation": name,
			"attempt":   attempt,
			"delay":     delay.String(),
			"error":     err.Error(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return err
}
