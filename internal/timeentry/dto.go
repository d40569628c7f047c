// AngelaMos | 2026
// dto.go

package timeentry

import (
	"time"
)

// CreateEntryRequest never carries an owner; entries belong to the caller.
type CreateEntryRequest struct {
	Date        string   `json:"date"        validate:"required,datetime=2006-01-02"`
	Hours       *float64 `json:"hours"       validate:"required,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
}

type UpdateEntryRequest struct {
	Date        *string  `json:"date,omitempty"        validate:"omitempty,datetime=2006-01-02"`
	Hours       *float64 `json:"hours,omitempty"       validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
}

func (r UpdateEntryRequest) IsEmpty() bool {
	return r.Date == nil && r.Hours == nil && r.Description == nil
}

type EntryResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	Hours       float64   `json:"hours"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Date:        e.WorkDate.Format(DateLayout),
		Hours:       e.Hours,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func ToEntryResponseList(entries []Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToEntryResponse(&entries[i]))
	}
	return responses
}
