// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Email      string  `json:"email"       validate:"required,email,max=255"`
	Password   string  `json:"password"    validate:"required,min=1,max=128"`
	FullName   string  `json:"full_name"   validate:"required,min=1,max=200"`
	Position   string  `json:"position"    validate:"max=200"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
	Role       string  `json:"role"        validate:"omitempty,oneof=admin supervisor employee"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	FullName   *string  `json:"full_name,omitempty"   validate:"omitempty,min=1,max=200"`
	Position   *string  `json:"position,omitempty"    validate:"omitempty,max=200"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	Password   *string  `json:"password,omitempty"    validate:"omitempty,min=1,max=128"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.FullName == nil && r.Position == nil &&
		r.HourlyRate == nil && r.Password == nil
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

func ToUserResponse(u *User) UserResponse {
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

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
