// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ManuGH/statusbot/internal/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	name   string
	status Status
}

func (m *mockChecker) Name() string { return m.name }

func (m *mockChecker) Check(context.Context) CheckResult {
	return CheckResult{Status: m.status}
}

func TestManager_Health_NoCheckers(t *testing.T) {
	m := NewManager("v1.0.0")

	resp := m.Health(context.Background(), true)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)
	assert.GreaterOrEqual(t, resp.Uptime, int64(0))
	assert.Nil(t, resp.Checks)
}

func TestManager_Health_WithCheckers(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "healthy", status: StatusHealthy})
	m.RegisterChecker(&mockChecker{name: "degraded", status: StatusDegraded})

	resp := m.Health(context.Background(), false)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Nil(t, resp.Checks)

	resp = m.Health(context.Background(), true)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Len(t, resp.Checks, 2)
}

func TestManager_Ready(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		ready    bool
		overall  Status
	}{
		{"none", nil, true, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, true, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, true, StatusDegraded},
		{"unhealthy wins", []Status{StatusUnhealthy, StatusDegraded}, false, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager("v1")
			for i, s := range tt.statuses {
				m.RegisterChecker(&mockChecker{name: string(rune('a' + i)), status: s})
			}
			resp := m.Ready(context.Background())
			assert.Equal(t, tt.ready, resp.Ready)
			assert.Equal(t, tt.overall, resp.Status)
		})
	}
}

func TestServeReady_StatusCodes(t *testing.T) {
	m := NewManager("v1")
	connected := false
	m.RegisterChecker(NewGatewayChecker(func() bool { return connected }))

	rec := httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Ready)
	assert.Equal(t, "gateway not connected", body.Checks["gateway"].Error)

	connected = true
	rec = httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestServeHealth_AlwaysOK(t *testing.T) {
	m := NewManager("v1")
	m.RegisterChecker(&mockChecker{name: "x", status: StatusUnhealthy})

	rec := httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz?verbose=true", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusUnhealthy, body.Status)
}

func TestBreakerChecker(t *testing.T) {
	state := resilience.StateClosed
	c := NewBreakerChecker("catalog", func() resilience.State { return state })
	assert.Equal(t, "catalog", c.Name())
	assert.Equal(t, StatusHealthy, c.Check(context.Background()).Status)

	state = resilience.StateOpen
	res := c.Check(context.Background())
	assert.Equal(t, StatusDegraded, res.Status)
	assert.Equal(t, "circuit open", res.Message)
}

func TestPingChecker(t *testing.T) {
	boom := errors.New("connection refused")

	assert.Equal(t, StatusHealthy, NewPingChecker("redis", nil, false).Check(context.Background()).Status)
	assert.Equal(t, StatusDegraded, NewPingChecker("redis", func(context.Context) error { return boom }, false).Check(context.Background()).Status)

	res := NewPingChecker("audit_db", func(context.Context) error { return boom }, true).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, res.Status)
	assert.Equal(t, "connection refused", res.Error)
}

func TestPingChecker_BoundedByTimeout(t *testing.T) {
	m := NewManager("v1")
	m.RegisterChecker(NewPingChecker("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, false))

	start := time.Now()
	resp := m.Ready(context.Background())
	assert.Less(t, time.Since(start), checkTimeout+time.Second)
	assert.Equal(t, StatusDegraded, resp.Status)
}
