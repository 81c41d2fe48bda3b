// Copyright (c) 2026 Travelpack. All rights reserved.

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/ctxutil"
	"github.com/travelpack/travelpack/internal/platform/middleware"
	"github.com/travelpack/travelpack/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	t.Run("generates_when_absent", func(t *testing.T) {
		var seen string
		handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
			seen = ctxutil.GetRequestID(request.Context())
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("reuses_client_value", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Request-ID", "client-id")

		recorder := httptest.NewRecorder()
		middleware.RequestID()(okHandler).ServeHTTP(recorder, request)

		assert.Equal(t, "client-id", recorder.Header().Get("X-Request-ID"))
	})
}

func TestStructuredLogger_LogsUserID(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	verifier := &stubVerifier{username: "alice"}
	resolver := &stubResolver{identity: &sec.Identity{UserID: "u-42", Username: "alice"}}

	handler := middleware.StructuredLogger(logger, nil)(middleware.Authenticate(verifier, resolver)(okHandler))

	request := httptest.NewRequest(http.MethodGet, "/trips", nil)
	request.Header.Set("Authorization", "Bearer t")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "http_request_finished", entry["msg"])
	assert.Equal(t, "u-42", entry["user_id"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

type recordingObserver struct {
	method string
	route  string
	status int
}

func (r *recordingObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.method, r.route, r.status = method, route, status
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	observer := &recordingObserver{}

	router := chi.NewRouter()
	router.Use(middleware.Metrics(observer))
	router.Get("/trips/{trip_id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trips/abc", nil))

	assert.Equal(t, http.MethodGet, observer.method)
	assert.Equal(t, "/trips/{trip_id}", observer.route)
	assert.Equal(t, http.StatusNotFound, observer.status)
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.NewRateLimiter(ctx, 1, 2, nil).Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:1234"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket.
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.2:1234"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apperr.CodeInternal)
}

type suffixPolicy string

func (s suffixPolicy) AllowsOrigin(origin string) bool {
	return len(origin) >= len(s) && origin[len(origin)-len(s):] == string(s)
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS(suffixPolicy("travelpack.app"))(okHandler)

	t.Run("allowed_origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Origin", "https://web.travelpack.app")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "https://web.travelpack.app", recorder.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign_origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Origin", "https://evil.example")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodOptions, "/trips", nil)
		request.Header.Set("Origin", "https://web.travelpack.app")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}

func TestRateLimiter_IgnoresForwardedHeadersFromUntrustedPeer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.NewRateLimiter(ctx, 1, 1, middleware.NewClientIP(nil)).Handler(okHandler)

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "198.51.100.50:4000"
		request.Header.Set("X-Forwarded-For", spoofed)
		request.Header.Set("X-Real-IP", spoofed)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestClientIP(t *testing.T) {
	trusted := middleware.NewClientIP([]netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")})

	tests := []struct {
		name      string
		resolver  *middleware.ClientIP
		remote    string
		realIP    string
		forwarded string
		want      string
	}{
		{"no_headers", trusted, "192.0.2.1:5555", "", "", "192.0.2.1"},
		{"untrusted_peer_real_ip", trusted, "192.0.2.1:5555", "198.51.100.9", "", "192.0.2.1"},
		{"untrusted_peer_forwarded", trusted, "192.0.2.1:5555", "", "203.0.113.7", "192.0.2.1"},
		{"nil_resolver", nil, "10.0.0.1:5555", "198.51.100.9", "203.0.113.7", "10.0.0.1"},
		{"trusted_peer_real_ip", trusted, "10.0.0.1:5555", "198.51.100.9", "203.0.113.7", "198.51.100.9"},
		{"trusted_peer_forwarded", trusted, "10.0.0.1:5555", "", "203.0.113.7", "203.0.113.7"},
		{"skips_trusted_hops", trusted, "10.0.0.1:5555", "", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"client_supplied_prefix_ignored", trusted, "10.0.0.1:5555", "", "1.1.1.1, 203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"garbage_real_ip", trusted, "10.0.0.1:5555", "not-an-ip", "", "10.0.0.1"},
		{"all_hops_trusted", trusted, "10.0.0.1:5555", "", "10.0.0.3, 10.0.0.2", "10.0.0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.remote
			if tt.realIP != "" {
				request.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, tt.resolver.Resolve(request))
		})
	}
}
