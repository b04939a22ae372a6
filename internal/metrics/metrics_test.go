// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSessionEnd(t *testing.T) {
	before := testutil.ToFloat64(sessionsTotal.WithLabelValues("APPLIED", ""))
	RecordSessionEnd("APPLIED", "", 2*time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(sessionsTotal.WithLabelValues("APPLIED", "")))

	m := &dto.Metric{}
	obs, err := sessionDuration.GetMetricWithLabelValues("APPLIED")
	require.NoError(t, err)
	require.NoError(t, obs.(prometheus.Metric).Write(m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(1))
}

func TestActiveSessionsGauge(t *testing.T) {
	before := testutil.ToFloat64(sessionsActive)
	IncActiveSessions()
	IncActiveSessions()
	DecActiveSessions()
	assert.Equal(t, before+1, testutil.ToFloat64(sessionsActive))
	DecActiveSessions()
}

func TestRecordCommand(t *testing.T) {
	for _, result := range []string{"accepted", "denied", "throttled", "invalid"} {
		before := testutil.ToFloat64(commandInvocationsTotal.WithLabelValues("product-status", result))
		RecordCommand("product-status", result)
		assert.Equal(t, before+1, testutil.ToFloat64(commandInvocationsTotal.WithLabelValues("product-status", result)), result)
	}
}

func TestSetGatewayConnected(t *testing.T) {
	SetGatewayConnected(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(gatewayConnected))
	SetGatewayConnected(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(gatewayConnected))
}

func TestSetCircuitBreakerState_OneHot(t *testing.T) {
	SetCircuitBreakerState("test", "open")

	assert.Equal(t, 1.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("test", "open")))
	assert.Equal(t, 0.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("test", "closed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("test", "half-open")))

	SetCircuitBreakerState("test", "closed")
	assert.Equal(t, 0.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("test", "open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(circuitBreakerState.WithLabelValues("test", "closed")))
}

func TestCatalogMetrics(t *testing.T) {
	before := testutil.ToFloat64(catalogErrorsTotal.WithLabelValues("list_products", "timeout"))
	IncCatalogError("list_products", "timeout")
	assert.Equal(t, before+1, testutil.ToFloat64(catalogErrorsTotal.WithLabelValues("list_products", "timeout")))

	hits := testutil.ToFloat64(listingCacheTotal.WithLabelValues("hit"))
	RecordListingCache("hit")
	assert.Equal(t, hits+1, testutil.ToFloat64(listingCacheTotal.WithLabelValues("hit")))

	ObserveCatalogRequest("update_status", 200, 50*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(catalogRequestDuration), 1)
}

func TestRecordIllegalTransition(t *testing.T) {
	before := testutil.ToFloat64(illegalTransitionsTotal.WithLabelValues("APPLIED", "OptionSelected"))
	RecordIllegalTransition("APPLIED", "OptionSelected")
	assert.Equal(t, before+1, testutil.ToFloat64(illegalTransitionsTotal.WithLabelValues("APPLIED", "OptionSelected")))
}
