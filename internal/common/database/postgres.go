package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"bistro-attendant/internal/common/config"
	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
)

// NewPostgresConnection opens and verifies a Postgres pool.
func NewPostgresConnection(ctx context.Context, cfg config.PostgresConfig, log logger.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, stderrors.NewDatabaseConnectionError(err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, stderrors.NewDatabaseConnectionError(err)
	}

	log.Info("connected to postgres", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.Database,
	})
	return db, nil
}
