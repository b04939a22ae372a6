// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package updater applies a status change to exactly one catalog product.
package updater

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/lifecycle"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/metrics"
)

// Writer issues the catalog bulk status update. A nil color clears it.
type Writer interface {
	UpdateStatus(ctx context.Context, ids []model.ProductID, color *string, text string) error
}

// Outcome describes the result of a single Apply call.
type Outcome struct {
	Applied     bool
	ProductName string
	Text        string
	Swatch      model.Swatch
	Detail      string
	At          time.Time
}

// Updater applies status requests. It never retries a write.
type Updater struct {
	writer  Writer
	palette model.Palette
	now     func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(u *Updater) { u.now = now }
}

// New creates an updater writing through w with colors from palette.
func New(w Writer, palette model.Palette, opts ...Option) *Updater {
	u := &Updater{writer: w, palette: palette, now: time.Now}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Apply performs exactly one write for req. On failure the returned error
// wraps lifecycle.ErrUpdateFailed and the Outcome carries the sanitized
// collaborator detail, if any.
func (u *Updater) Apply(ctx context.Context, req model.StatusUpdateRequest, productName string) (Outcome, error) {
	out := Outcome{ProductName: productName, Text: req.Text}
	if err := req.Validate(u.palette); err != nil {
		out.At = u.now()
		return out, fmt.Errorf("%w: %w", lifecycle.ErrUpdateFailed, err)
	}
	swatch, _ := u.palette.Lookup(req.Color)
	out.Swatch = swatch

	err := u.writer.UpdateStatus(ctx, []model.ProductID{req.TargetID}, swatch.Value, req.Text)
	out.At = u.now()
	if err != nil {
		metrics.RecordStatusUpdate("failure", string(req.Color))
		out.Detail = DetailOf(err)
		return out, fmt.Errorf("%w: %w", lifecycle.ErrUpdateFailed, err)
	}
	metrics.RecordStatusUpdate("success", string(req.Color))
	out.Applied = true
	return out, nil
}

// DetailOf extracts the user-presentable message a collaborator attached to err.
func DetailOf(err error) string {
	var d interface{ Detail() string }
	if errors.As(err, &d) {
		return lifecycle.SanitizeDetail(d.Detail())
	}
	return ""
}
