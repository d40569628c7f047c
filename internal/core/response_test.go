// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", NotFoundError("user"), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", DuplicateError("email"), http.StatusBadRequest, "DUPLICATE"},
		{"wrapped app error", fmt.Errorf("handler: %w", ForbiddenError("no")), http.StatusForbidden, "FORBIDDEN"},
		{"plain error hidden", errors.New("pq: secret detail"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSONError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantBody, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "secret detail")
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := fmt.Errorf("get user: %w", NotFoundError("user"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessageAndNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "Time entry deleted successfully")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Time entry deleted successfully"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

type sample struct {
	Email string   `json:"email"       validate:"required,email"`
	Rate  *float64 `json:"hourly_rate" validate:"required,gte=0"`
	Date  string   `json:"date"        validate:"omitempty,datetime=2006-01-02"`
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := NewValidator()
	neg := -1.0

	err := v.Struct(sample{Email: "nope", Rate: &neg, Date: "15-01-2024"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "hourly_rate must be greater than or equal to 0")
	assert.Contains(t, msg, "date must match format 2006-01-02")

	zero := 0.0
	assert.NoError(t, v.Struct(sample{Email: "a@b.co", Rate: &zero}))
}
