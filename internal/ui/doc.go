// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package ui defines the platform-neutral presentation surface the status
// workflow renders into, and the Collector that routes user interactions
// to the session prompt waiting for them.
package ui
