package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := RateLimit(NewRedisLimiter(rdb, 2, time.Minute, "test"), nil, zap.NewNop())(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1234"))

	// other clients have their own window
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:1234"))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234"))
}

func TestRedisLimiter_SetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewRedisLimiter(rdb, 5, 30*time.Second, "rl")
	ok, err := limiter.Allow(context.Background(), "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, mr.Exists("rl:10.0.0.9"))
	assert.Equal(t, 30*time.Second, mr.TTL("rl:10.0.0.9"))
}

func TestLocalLimiter(t *testing.T) {
	h := RateLimit(NewLocalLimiter(3, time.Hour), nil, zap.NewNop())(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:1"))
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := RateLimit(failingLimiter{}, nil, zap.NewNop())(okHandler())
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1"))
}
