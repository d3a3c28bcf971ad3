package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/repository"
	"shareit/internal/service"
)

func setupRateLimitedServer(t *testing.T, requests int) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := NewServer(
		config.ServerConfig{ReadTimeoutSec: 5, WriteTimeoutSec: 5},
		config.RateLimitConfig{Enabled: true, Requests: requests, WindowSec: 60},
		service.NewUserService(db, &logger),
		service.NewItemService(db, &logger),
		service.NewBookingService(db, events.NewEventBus(), &logger),
		service.NewRequestService(db, &logger),
		repository.NewMemoryRateLimiter(),
		&logger,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestRateLimitByActorHeader(t *testing.T) {
	ts := setupRateLimitedServer(t, 2)

	get := func(actor string) int {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
		require.NoError(t, err)
		if actor != "" {
			req.Header.Set(userHeader, actor)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get("1"))
	assert.Equal(t, http.StatusOK, get("1"))
	assert.Equal(t, http.StatusTooManyRequests, get("1"))

	// A different actor has its own budget.
	assert.Equal(t, http.StatusOK, get("2"))
}

func TestMetricsEndpointLabelIsRoutePattern(t *testing.T) {
	metrics.Register()
	ts := setupRateLimitedServer(t, 100)

	// Distinct raw paths must collapse into one route-pattern series, or the
	// endpoint label grows without bound.
	for _, path := range []string{"/users/1", "/users/2"} {
		req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var endpoints []string
	for _, mf := range families {
		if mf.GetName() != "shareit_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "endpoint" {
					endpoints = append(endpoints, label.GetValue())
				}
			}
		}
	}

	assert.Contains(t, endpoints, "GET /users/{id}")
	assert.NotContains(t, endpoints, "GET /users/1")
	assert.NotContains(t, endpoints, "GET /users/2")
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts := setupRateLimitedServer(t, 100)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "fixed-id")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "fixed-id", resp.Header.Get("X-Request-Id"))
}
