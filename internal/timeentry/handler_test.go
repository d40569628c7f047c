// AngelaMos | 2026
// handler_test.go

package timeentry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hours-tracker/internal/core"
	"github.com/carterperez-dev/hours-tracker/internal/middleware"
	"github.com/carterperez-dev/hours-tracker/internal/policy"
)

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	svc, _ := newTestService()

	authn := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Test-User")
			if id == "" {
				core.Unauthorized(w, "")
				return
			}
			ctx := middleware.WithCaller(r.Context(), policy.Caller{
				ID:   id,
				Role: r.Header.Get("X-Test-Role"),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, authn)
	return r, svc
}

func call(
	t *testing.T,
	h http.Handler,
	as *policy.Caller,
	method, path, body string,
) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if as != nil {
		req.Header.Set("X-Test-User", as.ID)
		req.Header.Set("X-Test-Role", as.Role)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateAndList(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := call(t, h, nil, http.MethodPost, "/time-entries", `{"date":"2026-03-02","hours":8}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, &alice, http.MethodPost, "/time-entries",
		`{"date":"2026-03-02","hours":8,"description":"standup","user_id":"bob"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, alice.ID, created.UserID)
	assert.Equal(t, "2026-03-02", created.Date)
	require.NotNil(t, created.Description)
	assert.Equal(t, "standup", *created.Description)

	rec = call(t, h, &bob, http.MethodPost, "/time-entries", `{"date":"2026-03-02","hours":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, &alice, http.MethodGet, "/time-entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&mine))
	assert.Len(t, mine, 1)

	rec = call(t, h, &admin, http.MethodGet, "/time-entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&all))
	assert.Len(t, all, 2)
}

func TestHandler_Create_Validation(t *testing.T) {
	h, _ := newTestRouter(t)

	bodies := []string{
		`{"date":"2026-03-02","hours":-1}`,
		`{"date":"March 2","hours":1}`,
		`{"hours":1}`,
		`{"date":"2026-03-02"}`,
		`{`,
	}

	for _, body := range bodies {
		rec := call(t, h, &alice, http.MethodPost, "/time-entries", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHandler_UpdateDelete(t *testing.T) {
	h, svc := newTestRouter(t)
	e := mustCreate(t, svc, alice, "2026-03-02", 8)

	rec := call(t, h, &bob, http.MethodPut, "/time-entries/"+e.ID, `{"hours":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, h, &alice, http.MethodPut, "/time-entries/missing", `{"hours":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, h, &alice, http.MethodPut, "/time-entries/"+e.ID, `{"hours":7.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, 7.5, updated.Hours)

	rec = call(t, h, &supervisor, http.MethodDelete, "/time-entries/"+e.ID, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, h, &admin, http.MethodDelete, "/time-entries/"+e.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var msg core.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, "Time entry deleted successfully", msg.Message)

	rec = call(t, h, &admin, http.MethodDelete, "/time-entries/"+e.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_HoursStoredExactly(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, tc := range []struct {
		body string
		want float64
	}{
		{`{"date":"2026-03-02","hours":1000000}`, 1000000},
		{`{"date":"2026-03-03","hours":7.125}`, 7.125},
	} {
		rec := call(t, h, &alice, http.MethodPost, "/time-entries", tc.body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var created EntryResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
		assert.Equal(t, tc.want, created.Hours)
	}

	rec := call(t, h, &alice, http.MethodGet, "/time-entries", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 2)
	assert.Equal(t, 7.125, listed[0].Hours)
	assert.Equal(t, 1000000.0, listed[1].Hours)
}

func TestHandler_MalformedIDIsNotFound(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := call(t, h, &admin, http.MethodPut, "/time-entries/not-a-uuid", `{"hours":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, h, &admin, http.MethodDelete, "/time-entries/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestHandler_InvalidDataFromStoreIsBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("create time entry: %w: numeric field overflow", core.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
