package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(GetClientFromContext(r.Context())))
}

func TestAPIKeyAuth(t *testing.T) {
	h := APIKeyAuth(map[string]string{"cli": "secret"})(http.HandlerFunc(okHandler))

	cases := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"missing header", "/v1/validate", "", http.StatusUnauthorized, ""},
		{"wrong key", "/v1/validate", "Bearer nope", http.StatusUnauthorized, ""},
		{"bearer key", "/v1/validate", "Bearer secret", http.StatusOK, "cli"},
		{"bare key", "/v1/validate", "secret", http.StatusOK, "cli"},
		{"health bypass", "/health/live", "", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestAPIKeyAuth_DisabledWithoutKeys(t *testing.T) {
	h := APIKeyAuth(nil)(http.HandlerFunc(okHandler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ideas", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 0)
	defer rl.Stop()
	h := rl.Middleware(http.HandlerFunc(okHandler))

	do := func(path, addr string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, do("/v1/validate", "10.0.0.1:1234"))
	// same client, new connection
	assert.Equal(t, http.StatusTooManyRequests, do("/v1/validate", "10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, do("/v1/validate", "10.0.0.2:1234"))
	assert.Equal(t, http.StatusOK, do("/health", "10.0.0.1:1234"))
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_EvictIdleAndStop(t *testing.T) {
	rl := NewRateLimiter(5, 1)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	rl.evictIdle(time.Now())
	assert.Equal(t, 2, rl.Len())
	rl.evictIdle(time.Now().Add(limiterIdleAfter + time.Second))
	assert.Equal(t, 0, rl.Len())

	rl.Stop()
	rl.Stop()
	select {
	case <-rl.stop:
	default:
		t.Fatal("stop channel still open")
	}
}

func TestSanitizeAndValidate(t *testing.T) {
	assert.Equal(t, "AI\tcoach", SanitizeString(" \x00AI\tcoach\x07 "))
	assert.NoError(t, ValidateIdeaLength(strings.Repeat("é", MaxIdeaLength)))
	assert.Error(t, ValidateIdeaLength(strings.Repeat("a", MaxIdeaLength+1)))
	assert.Equal(t, 0, ValidateLimit(-5))
	assert.Equal(t, 20, ValidateLimit(20))
	assert.Equal(t, 1000, ValidateLimit(5000))
}

func TestHealthHandler(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"store": CheckerFunc(func(context.Context) error { return nil }),
		"nats":  CheckerFunc(func(context.Context) error { return errors.New("down") }),
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["store"].Status)
	assert.Equal(t, "down", body.Checks["nats"].Message)
}

func TestReadinessHandler_IgnoresOptionalBackends(t *testing.T) {
	h := ReadinessHandler(map[string]HealthChecker{
		"store": CheckerFunc(func(context.Context) error { return nil }),
		"nats":  CheckerFunc(func(context.Context) error { return errors.New("down") }),
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)
	assert.NotContains(t, rec.Body.String(), "nats")

	h = ReadinessHandler(map[string]HealthChecker{
		"database": CheckerFunc(func(context.Context) error { return errors.New("refused") }),
	})
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	before := GetMetrics()["requests_failed"].(uint64)
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/validate", nil))
	assert.Equal(t, before+1, GetMetrics()["requests_failed"].(uint64))
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/validate", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusCreated), fields["status"])
	assert.Equal(t, int64(5), fields["bytes"])
	assert.Equal(t, "/v1/validate", fields["path"])
}
