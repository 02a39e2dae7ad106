package repository

import (
	"context"
	"encoding/json"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpsapps/daily/internal/models"
)

func newSnapshotMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSnapshotRepositoryEnsureSchema(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db, "daily:app_state")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS app_snapshots").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositorySaveUpserts(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db, "daily:app_state")

	mock.ExpectExec("INSERT INTO app_snapshots").
		WithArgs("daily:app_state", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	state := models.AppState{
		Teachers:     []models.Teacher{{ID: "Alice Smith", Name: "Alice Smith"}},
		RosterLoaded: true,
	}
	require.NoError(t, repo.Save(context.Background(), state))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryLoadRoundTrip(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db, "daily:app_state")

	stored := models.AppState{
		Teachers:     []models.Teacher{{ID: "Alice Smith", Name: "Alice Smith"}},
		RosterLoaded: true,
	}
	payload, err := json.Marshal(stored)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT state FROM app_snapshots").
		WithArgs("daily:app_state").
		WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(payload))

	state, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.True(t, state.RosterLoaded)
	require.Len(t, state.Teachers, 1)
	assert.Equal(t, "Alice Smith", state.Teachers[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryLoadMissingRow(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db, "daily:app_state")

	mock.ExpectQuery("SELECT state FROM app_snapshots").
		WithArgs("daily:app_state").
		WillReturnRows(sqlmock.NewRows([]string{"state"}))

	state, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)
	assert.NoError(t, mock.ExpectationsWereMet())
}
