package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
)

// Entry kinds stored in the catalog_entries table.
const (
	KindWeeklyHours = "weekly_hours"
	KindPrograms    = "programs"
	KindInfoFacts   = "info_facts"
)

const loadByKindQuery = `
	SELECT version, data
	FROM catalog_entries
	WHERE kind = $1
	ORDER BY version DESC
	LIMIT 1`

const insertVersionQuery = `
	INSERT INTO catalog_entries (kind, version, data, created_at)
	VALUES ($1, $2, $3, $4)`

const maxVersionQuery = `
	SELECT COALESCE(MAX(version), 0)
	FROM catalog_entries
	WHERE kind = $1`

// Repository reads and writes versioned catalog documents in Postgres.
// Each kind is a single JSON document; readers always take the highest
// version, so publishing a new version is an atomic swap.
type Repository struct {
	db  *sql.DB
	log logger.Logger
}

func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// LoadByKind unmarshals the newest document of the given kind into dest
// and returns its version. A kind with no rows returns ErrNoMatch.
func (r *Repository) LoadByKind(ctx context.Context, kind string, dest interface{}) (int, error) {
	var (
		version int
		data    []byte
	)
	err := r.db.QueryRowContext(ctx, loadByKindQuery, kind).Scan(&version, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, stderrors.ErrNoMatch
	}
	if err != nil {
		return 0, stderrors.NewDatabaseQueryError("loadByKind", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return 0, stderrors.NewCatalogLoadError(err)
	}

	r.log.Debug("loaded catalog document", map[string]interface{}{
		"kind":    kind,
		"version": version,
	})
	return version, nil
}

// PublishVersion stores a new document for the kind at max(version)+1.
func (r *Repository) PublishVersion(ctx context.Context, kind string, doc interface{}) (int, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, stderrors.NewInternalError("encoding catalog document", err)
	}

	var current int
	if err := r.db.QueryRowContext(ctx, maxVersionQuery, kind).Scan(&current); err != nil {
		return 0, stderrors.NewDatabaseQueryError("maxVersion", err)
	}

	next := current + 1
	if _, err := r.db.ExecContext(ctx, insertVersionQuery, kind, next, data, time.Now().UTC()); err != nil {
		return 0, stderrors.NewDatabaseQueryError("publishVersion", err)
	}

	r.log.Info("published catalog document", map[string]interface{}{
		"kind":    kind,
		"version": next,
	})
	return next, nil
}
