package catalog

import (
	"context"
	"sync/atomic"

	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/common/metrics"
	"bistro-attendant/internal/models"
)

// Snapshot is one immutable, fully loaded view of the catalog. Request
// handling only ever sees a snapshot, never the database.
type Snapshot struct {
	WeeklyHours []models.DayHours
	Programs    []models.Program
	InfoFacts   []models.InfoFact
	Versions    map[string]int
}

// HoursFor returns the restaurant's general windows on the named weekday.
func (s *Snapshot) HoursFor(weekday string) []models.TimeRange {
	for _, d := range s.WeeklyHours {
		if d.Weekday == weekday {
			return d.Ranges
		}
	}
	return nil
}

// Loader is the read side of the catalog repository.
type Loader interface {
	LoadByKind(ctx context.Context, kind string, dest interface{}) (int, error)
}

// Store holds the current snapshot behind an atomic pointer. Warm swaps in
// a new snapshot; until the first successful Warm every read fails with
// ErrCatalogNotReady.
type Store struct {
	loader  Loader
	log     logger.Logger
	current atomic.Pointer[Snapshot]
}

func NewStore(loader Loader, log logger.Logger) *Store {
	return &Store{loader: loader, log: log}
}

// Warm loads all three catalog kinds and publishes them as the current
// snapshot. On failure the previous snapshot, if any, stays in place.
func (s *Store) Warm(ctx context.Context) error {
	snap := &Snapshot{Versions: make(map[string]int, 3)}

	hoursVersion, err := s.loader.LoadByKind(ctx, KindWeeklyHours, &snap.WeeklyHours)
	if err != nil {
		return stderrors.NewCatalogLoadError(err)
	}
	programsVersion, err := s.loader.LoadByKind(ctx, KindPrograms, &snap.Programs)
	if err != nil {
		return stderrors.NewCatalogLoadError(err)
	}
	factsVersion, err := s.loader.LoadByKind(ctx, KindInfoFacts, &snap.InfoFacts)
	if err != nil {
		return stderrors.NewCatalogLoadError(err)
	}

	snap.Versions[KindWeeklyHours] = hoursVersion
	snap.Versions[KindPrograms] = programsVersion
	snap.Versions[KindInfoFacts] = factsVersion

	s.current.Store(snap)
	for kind, version := range snap.Versions {
		metrics.CatalogSnapshotVersion.WithLabelValues(kind).Set(float64(version))
	}

	s.log.Info("catalog snapshot warmed", map[string]interface{}{
		"weekly_hours_version": hoursVersion,
		"programs_version":     programsVersion,
		"info_facts_version":   factsVersion,
		"programs":             len(snap.Programs),
		"info_facts":           len(snap.InfoFacts),
	})
	return nil
}

// Snapshot returns the current catalog view.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, stderrors.NewCatalogNotReadyError()
	}
	return snap, nil
}

// Ready reports whether a snapshot has been warmed.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}
