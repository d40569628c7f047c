// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/hours-tracker/internal/policy"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Position     string    `db:"position"`
	HourlyRate   float64   `db:"hourly_rate"`
	Role         string    `db:"role"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == policy.RoleAdmin
}
