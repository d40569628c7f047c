// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hours-tracker/internal/policy"
)

func TestKeyByIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "ip:10.0.0.1", KeyByIP(req))

	req.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "ip:10.0.0.2", KeyByIP(req))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 10.0.0.3")
	assert.Equal(t, "ip:10.0.0.3", KeyByIP(req))
}

func TestKeyByUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "ip:10.0.0.1", KeyByUser(req))

	ctx := WithCaller(req.Context(), policy.Caller{ID: "u-1", Role: policy.RoleEmployee})
	assert.Equal(t, "user:u-1", KeyByUser(req.WithContext(ctx)))
}

func TestLocalLimiter_Burst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := newLocalLimiter(ctx)
	limit := Limit(60, 2, time.Minute)

	for i := 0; i < 2; i++ {
		res, err := l.allow("k", limit)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Allowed)
	}

	res, err := l.allow("k", limit)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Allowed)
	assert.Positive(t, res.RetryAfter)

	res, err = l.allow("other", limit)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allowed)
}

func TestLocalLimiter_EvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := newLocalLimiter(ctx)
	_, err := l.allow("k", Limit(10, 1, time.Second))
	require.NoError(t, err)

	l.evictIdle(time.Now().Add(time.Minute))

	_, ok := l.limiters.Load("k")
	assert.False(t, ok)
}

func TestRateLimiter_FallsBackWhenRedisDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	rl := NewRateLimiter(ctx, rdb, RateLimitConfig{Limit: Limit(60, 1, time.Minute)})
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.9:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_KeyByUserSeparatesCallersOnOneIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	rl := NewRateLimiter(ctx, rdb, RateLimitConfig{
		Limit:    Limit(60, 1, time.Minute),
		KeyFunc:  KeyByUser,
		FailOpen: true,
		Prefix:   "ratelimit:user",
	})
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
		req.RemoteAddr = "10.0.0.7:1234"
		caller := policy.Caller{ID: userID, Role: policy.RoleEmployee}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req.WithContext(WithCaller(req.Context(), caller)))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("u-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("u-1"))
	assert.Equal(t, http.StatusOK, send("u-2"))
}
