package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/models"
)

func TestLoadByKind_ReturnsNewestVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hours := []models.DayHours{
		{Weekday: "sábado", Ranges: []models.TimeRange{{OpensAt: "10:00", ClosesAt: "23:00"}}},
	}
	data, err := json.Marshal(hours)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT version, data").
		WithArgs(KindWeeklyHours).
		WillReturnRows(sqlmock.NewRows([]string{"version", "data"}).AddRow(3, data))

	repo := NewRepository(db, logger.NewTestLogger(t))

	var got []models.DayHours
	version, err := repo.LoadByKind(context.Background(), KindWeeklyHours, &got)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
	assert.Equal(t, hours, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadByKind_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT version, data").
		WithArgs(KindPrograms).
		WillReturnRows(sqlmock.NewRows([]string{"version", "data"}))

	repo := NewRepository(db, logger.NewTestLogger(t))

	var got []models.Program
	_, err = repo.LoadByKind(context.Background(), KindPrograms, &got)
	assert.ErrorIs(t, err, stderrors.ErrNoMatch)
}

func TestLoadByKind_BadDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT version, data").
		WithArgs(KindInfoFacts).
		WillReturnRows(sqlmock.NewRows([]string{"version", "data"}).AddRow(1, []byte("not json")))

	repo := NewRepository(db, logger.NewTestLogger(t))

	var got []models.InfoFact
	_, err = repo.LoadByKind(context.Background(), KindInfoFacts, &got)
	require.Error(t, err)
	var se *stderrors.StandardError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, stderrors.ErrCodeCatalogLoadFailed, se.Code)
}

func TestPublishVersion_IncrementsVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(KindPrograms).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))
	mock.ExpectExec("INSERT INTO catalog_entries").
		WithArgs(KindPrograms, 3, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewRepository(db, logger.NewTestLogger(t))

	version, err := repo.PublishVersion(context.Background(), KindPrograms, DefaultPrograms())
	require.NoError(t, err)
	assert.Equal(t, 3, version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
