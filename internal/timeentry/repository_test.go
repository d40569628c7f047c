// AngelaMos | 2026
// repository_test.go

package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hours-tracker/internal/core"
)

var entryRowColumns = []string{
	"id", "user_id", "work_date", "hours", "description", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	desc := "sprint planning"

	mock.ExpectQuery(`INSERT INTO time_entries`).
		WithArgs("e-1", "u-1", day, 8.0, desc).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	e := &Entry{ID: "e-1", UserID: "u-1", WorkDate: day, Hours: 8, Description: &desc}
	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, now, e.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Scope(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM time_entries WHERE user_id = \$1 ORDER BY work_date DESC, created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow("e-1", "u-1", day, 8.0, nil, now, now))

	entries, err := repo.List(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Description)

	mock.ExpectQuery(`FROM time_entries ORDER BY work_date DESC, created_at DESC`).
		WillReturnRows(sqlmock.NewRows(entryRowColumns))

	entries, err = repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM time_entries WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(entryRowColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE time_entries`).
		WithArgs("e-1", day, 7.5, nil).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	e := &Entry{ID: "e-1", WorkDate: day, Hours: 7.5}
	require.NoError(t, repo.Update(context.Background(), e))
	assert.Equal(t, now, e.UpdatedAt)

	mock.ExpectExec(`DELETE FROM time_entries WHERE id = \$1`).
		WithArgs("e-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "e-1"), core.ErrNotFound)
}

func TestRepository_DeleteAllForOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM time_entries WHERE user_id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteAllForOwner(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestRepository_Aggregates(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`GROUP BY user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_hours"}).
			AddRow("u-1", 15.5).
			AddRow("u-2", 8.0))

	totals, err := repo.SumHoursByOwner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"u-1": 15.5, "u-2": 8.0}, totals)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS entries`).
		WillReturnRows(sqlmock.NewRows([]string{"entries", "total_hours"}).AddRow(3, 23.5))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Entries: 3, TotalHours: 23.5}, stats)
}

func TestRepository_DataErrorsAreInvalidInput(t *testing.T) {
	repo, mock := newMockRepo(t)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO time_entries`).
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})
	err := repo.Create(context.Background(), &Entry{ID: "e-1", UserID: "u-1", WorkDate: day, Hours: 1e6})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	mock.ExpectQuery(`UPDATE time_entries`).
		WillReturnError(&pgconn.PgError{Code: "23514", Message: "check constraint"})
	err = repo.Update(context.Background(), &Entry{ID: "e-1", WorkDate: day, Hours: -1})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}
