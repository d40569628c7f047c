// AngelaMos | 2026
// repository.go

package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/hours-tracker/internal/core"
)

const entryColumns = `id, user_id, work_date, hours, description, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, ownerID string) ([]Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id string) error
	DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error)
	SumHoursByOwner(ctx context.Context) (map[string]float64, error)
	Stats(ctx context.Context) (Stats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO time_entries (id, user_id, work_date, hours, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, entry, query,
		entry.ID,
		entry.UserID,
		entry.WorkDate,
		entry.Hours,
		entry.Description,
	)
	if err != nil {
		if core.IsInvalidDataError(err) {
			return fmt.Errorf("create time entry: %w: %w", core.ErrInvalidInput, err)
		}
		return fmt.Errorf("create time entry: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = $1`

	var entry Entry
	err := r.db.GetContext(ctx, &entry, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get time entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get time entry: %w", err)
	}

	return &entry, nil
}

// List returns entries newest work date first. An empty ownerID lists
// every user's entries.
func (r *repository) List(
	ctx context.Context,
	ownerID string,
) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries`
	var args []any

	if ownerID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, ownerID)
	}
	query += ` ORDER BY work_date DESC, created_at DESC`

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	return entries, nil
}

func (r *repository) Update(ctx context.Context, entry *Entry) error {
	query := `
		UPDATE time_entries
		SET work_date = $2, hours = $3, description = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &entry.UpdatedAt, query,
		entry.ID,
		entry.WorkDate,
		entry.Hours,
		entry.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update time entry: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsInvalidDataError(err) {
			return fmt.Errorf("update time entry: %w: %w", core.ErrInvalidInput, err)
		}
		return fmt.Errorf("update time entry: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete time entry: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteAllForOwner(
	ctx context.Context,
	ownerID string,
) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM time_entries WHERE user_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete time entries for owner: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete time entries for owner: %w", err)
	}

	return rows, nil
}

type ownerHours struct {
	UserID     string  `db:"user_id"`
	TotalHours float64 `db:"total_hours"`
}

func (r *repository) SumHoursByOwner(
	ctx context.Context,
) (map[string]float64, error) {
	query := `
		SELECT user_id, COALESCE(SUM(hours), 0) AS total_hours
		FROM time_entries
		GROUP BY user_id`

	var rows []ownerHours
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("sum hours by owner: %w", err)
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.UserID] = row.TotalHours
	}

	return totals, nil
}

func (r *repository) Stats(ctx context.Context) (Stats, error) {
	query := `
		SELECT COUNT(*) AS entries, COALESCE(SUM(hours), 0) AS total_hours
		FROM time_entries`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return Stats{}, fmt.Errorf("time entry stats: %w", err)
	}

	return stats, nil
}
