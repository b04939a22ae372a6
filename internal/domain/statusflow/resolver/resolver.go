// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package resolver turns a free-text search term into catalog candidates.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/lifecycle"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"golang.org/x/text/cases"
)

// Lister reads the full product listing of the configured shop.
type Lister interface {
	ListProducts(ctx context.Context) ([]model.Candidate, error)
}

// Resolver matches products by case-folded name substring.
type Resolver struct {
	lister Lister
}

// New returns a resolver over the given product listing.
func New(l Lister) *Resolver {
	return &Resolver{lister: l}
}

// Resolve returns every product whose folded name contains the folded term,
// in listing order. A blank term matches nothing and does not hit the catalog.
// Any listing failure is reported as lifecycle.ErrCatalogUnavailable.
func (r *Resolver) Resolve(ctx context.Context, term string) ([]model.Candidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	products, err := r.lister.ListProducts(ctx)
	if err != nil {
		if errors.Is(err, lifecycle.ErrCatalogUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", lifecycle.ErrCatalogUnavailable, err)
	}

	return Filter(products, term), nil
}

// Filter keeps the candidates whose folded name contains the folded term.
func Filter(products []model.Candidate, term string) []model.Candidate {
	// cases.Caser is stateful and not safe for concurrent use.
	fold := cases.Fold()
	needle := fold.String(term)

	var out []model.Candidate
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}
