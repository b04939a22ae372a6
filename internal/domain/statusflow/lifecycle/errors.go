// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"errors"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrSurfaceUnavailable = errors.New("chat surface unavailable")
	ErrUpdateFailed       = errors.New("status update failed")
	ErrExpired            = errors.New("prompt expired")
	ErrIllegalTransition  = errors.New("illegal transition")
	ErrUnknownCandidate   = errors.New("selection does not match a candidate")
	ErrCancelled          = errors.New("session cancelled")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrUnknown            = errors.New("unknown workflow error")
)

// ReasonErrorClass maps a reason code onto its sentinel error class.
func ReasonErrorClass(reason model.ReasonCode) error {
	switch reason {
	case model.RNone, "":
		return nil
	case model.RNoMatch:
		return nil
	case model.RExpired:
		return ErrExpired
	case model.RCatalogUnavailable:
		return ErrCatalogUnavailable
	case model.RSurfaceUnavailable:
		return ErrSurfaceUnavailable
	case model.RUpdateFailed:
		return ErrUpdateFailed
	case model.RCancelled:
		return ErrCancelled
	case model.RInternalInvariantBreach:
		return ErrInvariantViolation
	default:
		return ErrUnknown
	}
}
