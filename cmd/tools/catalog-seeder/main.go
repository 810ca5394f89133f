// catalog-seeder publishes the default Bistrô da Casa dataset as a new
// version of each catalog kind. Safe to run repeatedly: every run creates
// a fresh version and readers pick up the newest one.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bistro-attendant/internal/catalog"
	"bistro-attendant/internal/common/config"
	"bistro-attendant/internal/common/database"
	"bistro-attendant/internal/common/logger"
)

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS catalog_entries (
		id SERIAL PRIMARY KEY,
		kind TEXT NOT NULL,
		version INTEGER NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (kind, version)
	)`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, "console")
	defer func() { _ = zapLogger.Sync() }()
	log := logger.NewZapAdapter(zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresConnection(ctx, cfg.Database.Postgres, log)
	if err != nil {
		log.WithError(err).Error("could not connect to postgres", nil)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		log.WithError(err).Error("could not ensure catalog schema", nil)
		os.Exit(1)
	}

	repo := catalog.NewRepository(db, log)

	documents := []struct {
		kind string
		doc  interface{}
	}{
		{catalog.KindWeeklyHours, catalog.DefaultWeeklyHours()},
		{catalog.KindPrograms, catalog.DefaultPrograms()},
		{catalog.KindInfoFacts, catalog.DefaultInfoFacts()},
	}

	for _, d := range documents {
		version, err := repo.PublishVersion(ctx, d.kind, d.doc)
		if err != nil {
			log.WithError(err).Error("seeding failed", map[string]interface{}{"kind": d.kind})
			os.Exit(1)
		}
		log.Info("seeded catalog kind", map[string]interface{}{
			"kind":    d.kind,
			"version": version,
		})
	}
}
