package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitPerIP(t *testing.T) {
	h := RateLimit(t.Context(), 0.001, 2)(okHandler())

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:3333"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111"))
}

func TestRateLimitResponseBody(t *testing.T) {
	h := RateLimit(t.Context(), 0.001, 1)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())
}

func TestIPRateLimiterEvict(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	rl.getLimiter("a")
	rl.getLimiter("b")

	rl.mu.Lock()
	rl.visitors["a"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	remaining := rl.evict(time.Now().Add(-visitorTTL))
	assert.Equal(t, 1, remaining)

	rl.mu.Lock()
	_, hasA := rl.visitors["a"]
	_, hasB := rl.visitors["b"]
	rl.mu.Unlock()
	assert.False(t, hasA)
	assert.True(t, hasB)
}

func TestIPRateLimiterCleanupStops(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.cleanup(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not return after context was cancelled")
	}
}
