package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(perMinute int) (*Limiter, *time.Time) {
	rl := NewLimiter(Config{RequestsPerMinute: perMinute})
	now := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(2)
	defer rl.Stop()

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"), "clients are counted separately")

	*now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"), "new window")
	assert.Equal(t, int64(1), rl.GetMetrics().TotalHits)
}

func TestLimiter_Cleanup(t *testing.T) {
	rl, now := newTestLimiter(5)
	defer rl.Stop()

	rl.Allow("1.1.1.1")
	*now = now.Add(11 * time.Minute)
	rl.Allow("2.2.2.2")

	assert.Equal(t, 1, rl.cleanupStaleEntries())
	assert.Equal(t, 1, rl.ActiveClients())
}

func TestLimiter_MiddlewareLimitsWritesOnly(t *testing.T) {
	rl, _ := newTestLimiter(1)
	defer rl.Stop()
	ip := func(*http.Request) string { return "9.9.9.9" }
	h := rl.Middleware(ip, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodPost, http.StatusNoContent},
		{http.MethodPost, http.StatusTooManyRequests},
		{http.MethodGet, http.StatusNoContent},
		{http.MethodDelete, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/transactions", nil))
		assert.Equal(t, tt.want, rec.Code, tt.method)
		if tt.want == http.StatusTooManyRequests {
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}
}

func TestStop_Idempotent(t *testing.T) {
	rl := NewLimiter(DefaultConfig())
	rl.Stop()
	rl.Stop()
}
