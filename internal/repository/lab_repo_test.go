package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab_dashboard/internal/models"
)

var labColumns = []string{"id", "name", "location", "in_charge", "total_computers", "last_updated"}

func newMockLabRepo(t *testing.T) (*LabSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewLabSQLite(db), mock
}

func TestLabSQLite_SaveAll_UpsertsInTransaction(t *testing.T) {
	repo, mock := newMockLabRepo(t)
	ts := time.Date(2023, 9, 17, 10, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO labs")).
		WithArgs("lab-a", "Computer Lab A", "Building 1, Room 101", "Dr. Smith", 25, ts).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO labs")).
		WithArgs("lab-b", "Computer Lab B", "", "", 30, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.SaveAll(context.Background(), []models.Lab{
		{ID: "lab-a", Name: "Computer Lab A", Location: "Building 1, Room 101", InCharge: "Dr. Smith", TotalComputers: 25, LastUpdated: ts},
		{ID: "lab-b", Name: "Computer Lab B", TotalComputers: 30},
	})
	require.NoError(t, err)
}

func TestLabSQLite_SaveAll_RollsBackOnError(t *testing.T) {
	repo, mock := newMockLabRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO labs")).
		WillReturnError(errors.New("CHECK constraint failed"))
	mock.ExpectRollback()

	err := repo.SaveAll(context.Background(), []models.Lab{{ID: "bad", TotalComputers: -1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `upsert lab "bad"`)
}

func TestLabSQLite_List(t *testing.T) {
	repo, mock := newMockLabRepo(t)
	ts := time.Date(2023, 9, 17, 9, 15, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM labs ORDER BY rowid")).
		WillReturnRows(sqlmock.NewRows(labColumns).
			AddRow("lab-a", "Computer Lab A", "Building 1", "Dr. Smith", 25, ts).
			AddRow("lab-b", "Computer Lab B", "Building 1", "Prof. Johnson", 30, ts))

	labs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, labs, 2)
	assert.Equal(t, "lab-a", labs[0].ID)
	assert.Equal(t, 30, labs[1].TotalComputers)
	assert.Equal(t, time.UTC, labs[1].LastUpdated.Location())
}

func TestLabSQLite_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockLabRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM labs WHERE id=?")).
			WithArgs("lab-c").
			WillReturnRows(sqlmock.NewRows(labColumns).
				AddRow("lab-c", "Computer Lab C", "Building 2", "Dr. Williams", 20, time.Now()))

		lab, err := repo.Get(context.Background(), "lab-c")
		require.NoError(t, err)
		require.NotNil(t, lab)
		assert.Equal(t, "Dr. Williams", lab.InCharge)
	})

	t.Run("missing returns nil, nil", func(t *testing.T) {
		repo, mock := newMockLabRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM labs WHERE id=?")).
			WithArgs("unknown-id").
			WillReturnRows(sqlmock.NewRows(labColumns))

		lab, err := repo.Get(context.Background(), "unknown-id")
		require.NoError(t, err)
		assert.Nil(t, lab)
	})
}
