// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// RegisterRequest is the body of POST /auth/register. Role defaults to
// employee.
type RegisterRequest struct {
	Email      string  `json:"email"       validate:"required,email,max=255"`
	Password   string  `json:"password"    validate:"required,min=1,max=128"`
	FullName   string  `json:"full_name"   validate:"required,min=1,max=200"`
	Position   string  `json:"position"    validate:"required,max=200"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
	Role       string  `json:"role"        validate:"omitempty,oneof=admin supervisor employee"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Position   string    `json:"position"`
	HourlyRate float64   `json:"hourly_rate"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Position:   u.Position,
		HourlyRate: u.HourlyRate,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt.UTC(),
	}
}
