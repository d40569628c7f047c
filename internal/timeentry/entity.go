// AngelaMos | 2026
// entity.go

package timeentry

import (
	"time"
)

// DateLayout is the wire and storage format of a work date.
const DateLayout = "2006-01-02"

// Entry is one block of hours a user logged against a calendar date.
// UserID is the owner and never changes after creation.
type Entry struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	WorkDate    time.Time `db:"work_date"`
	Hours       float64   `db:"hours"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Stats summarises every stored entry.
type Stats struct {
	Entries    int     `db:"entries"`
	TotalHours float64 `db:"total_hours"`
}

// ParseDate parses a YYYY-MM-DD work date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
