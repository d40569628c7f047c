// AngelaMos | 2026
// handler_test.go

package auth

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

func newTestRouter(t *testing.T) (http.Handler, *fakeUsers) {
	t.Helper()
	svc, users, _ := newTestService(t)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(svc, svc), nil)
	return r, users
}

func doJSON(
	t *testing.T,
	h http.Handler,
	method, path, body, token string,
) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/auth/login",
		`{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.AccessToken
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestHandler_Login(t *testing.T) {
	h, users := newTestRouter(t)
	users.add(t, "admin@company.com", "admin123", policy.RoleAdmin)

	rec := doJSON(t, h, http.MethodPost, "/auth/login",
		`{"email":"admin@company.com","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["access_token"])
	assert.Equal(t, "bearer", resp["token_type"])
	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin@company.com", user["email"])
	assert.NotContains(t, user, "password_hash")

	rec = doJSON(t, h, http.MethodPost, "/auth/login",
		`{"email":"admin@company.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"not-an-email"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/login", `{`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Register(t *testing.T) {
	h, users := newTestRouter(t)
	users.add(t, "sup@company.com", "sup-pass", policy.RoleSupervisor)
	users.add(t, "emp@company.com", "emp-pass", policy.RoleEmployee)

	body := `{"email":"new@company.com","password":"pw","full_name":"New",` +
		`"position":"Dev","hourly_rate":250,"role":"employee"}`

	rec := doJSON(t, h, http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	empToken := loginToken(t, h, "emp@company.com", "emp-pass")
	rec = doJSON(t, h, http.MethodPost, "/auth/register", body, empToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	supToken := loginToken(t, h, "sup@company.com", "sup-pass")
	rec = doJSON(t, h, http.MethodPost, "/auth/register", body, supToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "New", created.FullName)
	assert.Equal(t, 250.0, created.HourlyRate)

	rec = doJSON(t, h, http.MethodPost, "/auth/register", body, supToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DUPLICATE", errorCode(t, rec))

	rec = doJSON(t, h, http.MethodPost, "/auth/register",
		`{"email":"x@company.com","password":"pw","full_name":"X","position":"Dev","hourly_rate":-1}`,
		supToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestHandler_MeAndLogout(t *testing.T) {
	h, users := newTestRouter(t)
	users.add(t, "emp@company.com", "emp-pass", policy.RoleEmployee)

	token := loginToken(t, h, "emp@company.com", "emp-pass")

	rec := doJSON(t, h, http.MethodGet, "/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var me UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, "emp@company.com", me.Email)

	rec = doJSON(t, h, http.MethodPost, "/auth/logout", "", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/auth/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REVOKED", errorCode(t, rec))

	rec = doJSON(t, h, http.MethodGet, "/auth/me", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, rec))
}

func TestHandler_RegisterInvalidDataHidesDetail(t *testing.T) {
	h, users := newTestRouter(t)
	users.add(t, "admin@company.com", "admin123", policy.RoleAdmin)
	token := loginToken(t, h, "admin@company.com", "admin123")

	users.failReg = fmt.Errorf(
		"create user: %w: ERROR: new row violates check constraint \"users_hourly_rate_check\"",
		core.ErrInvalidInput,
	)

	rec := doJSON(t, h, http.MethodPost, "/auth/register",
		`{"email":"x@company.com","password":"pw","full_name":"X","position":"Dev","hourly_rate":1}`,
		token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "VALIDATION_ERROR")
	assert.Contains(t, body, "invalid user data")
	assert.NotContains(t, body, "register:")
	assert.NotContains(t, body, "create user")
	assert.NotContains(t, body, "users_hourly_rate_check")
}
