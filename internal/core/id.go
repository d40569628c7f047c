// AngelaMos | 2026
// id.go

package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// CheckID rejects ids that cannot name a stored row. Every primary key is
// a UUID, so a malformed id is reported as not found without a query.
func CheckID(resource, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", resource, id, ErrNotFound)
	}
	return nil
}

// IsInvalidDataError reports Postgres data exceptions (class 22) and
// check constraint violations, which stem from the submitted values.
func IsInvalidDataError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23514" ||
		(len(pgErr.Code) == 5 && pgErr.Code[:2] == "22")
}
