// AngelaMos | 2026
// handler_test.go

package report

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hours-tracker/internal/middleware"
	"github.com/carterperez-dev/hours-tracker/internal/policy"
)

func TestHandler_SalaryReport(t *testing.T) {
	a := newApp(t)

	var as policy.Caller
	authn := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithCaller(r.Context(), as)))
		})
	}

	r := chi.NewRouter()
	NewHandler(a.reports).RegisterRoutes(r, authn)

	as = policy.Caller{ID: "emp", Role: policy.RoleEmployee}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/salary", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	as = a.admin
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/salary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	for _, key := range []string{"user_id", "user_name", "position", "hourly_rate", "total_hours", "total_salary"} {
		assert.Contains(t, rows[0], key)
	}
}
