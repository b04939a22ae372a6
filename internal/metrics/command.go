// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandInvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_command_invocations_total",
		Help: "Slash command invocations by admission result",
	}, []string{"command", "result"}) // result=accepted|denied|throttled|invalid

	configReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_config_reloads_total",
		Help: "Configuration reload attempts by outcome",
	}, []string{"outcome"})

	configValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statusbot_config_validation_errors_total",
		Help: "Total number of configuration validation errors",
	})

	gatewayConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statusbot_gateway_connected",
		Help: "Whether the chat gateway session is connected (1) or not (0)",
	})
)

// RecordCommand counts one command invocation.
func RecordCommand(command, result string) {
	commandInvocationsTotal.WithLabelValues(command, result).Inc()
}

// RecordConfigReload counts a reload attempt.
func RecordConfigReload(outcome string) {
	configReloadsTotal.WithLabelValues(outcome).Inc()
}

// IncConfigValidationError counts a configuration that failed validation.
func IncConfigValidationError() {
	configValidationErrors.Inc()
}

// SetGatewayConnected records the gateway connection state.
func SetGatewayConnected(connected bool) {
	if connected {
		gatewayConnected.Set(1)
		return
	}
	gatewayConnected.Set(0)
}
