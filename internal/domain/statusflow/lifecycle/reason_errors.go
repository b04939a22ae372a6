// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"context"
	"errors"
	"strings"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

// ReasonFromError classifies a collaborator error into a reason code.
func ReasonFromError(err error) model.ReasonCode {
	switch {
	case err == nil:
		return model.RNone
	case errors.Is(err, context.Canceled), errors.Is(err, ErrCancelled):
		return model.RCancelled
	case errors.Is(err, ErrExpired):
		return model.RExpired
	case errors.Is(err, ErrSurfaceUnavailable):
		return model.RSurfaceUnavailable
	case errors.Is(err, ErrUpdateFailed):
		return model.RUpdateFailed
	case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrInvariantViolation):
		return model.RInternalInvariantBreach
	default:
		// Anything else before resolution stems from the listing.
		return model.RCatalogUnavailable
	}
}

// SanitizeDetail flattens and truncates collaborator text before it is shown to users.
func SanitizeDetail(detail string) string {
	if detail == "" {
		return ""
	}
	const maxLen = 160
	clean := strings.Join(strings.Fields(detail), " ")
	if r := []rune(clean); len(r) > maxLen {
		return string(r[:maxLen]) + "..."
	}
	return clean
}
