// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/lifecycle"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	products []model.Candidate
	err      error
	calls    int
}

func (f *fakeLister) ListProducts(context.Context) ([]model.Candidate, error) {
	f.calls++
	return f.products, f.err
}

func product(id int64, name string) model.Candidate {
	return model.Candidate{ID: model.NumericID(id), Name: name}
}

func TestResolve_MatchesFoldedSubstringInOrder(t *testing.T) {
	lister := &fakeLister{products: []model.Candidate{
		product(1, "Blue Widget"),
		product(2, "Gadget"),
		product(3, "WIDGET pro"),
		product(4, "Straße Sign"),
	}}
	r := New(lister)

	tests := []struct {
		term string
		want []model.Candidate
	}{
		{term: "widget", want: []model.Candidate{product(1, "Blue Widget"), product(3, "WIDGET pro")}},
		{term: "  Gadget ", want: []model.Candidate{product(2, "Gadget")}},
		{term: "STRASSE", want: []model.Candidate{product(4, "Straße Sign")}},
		{term: "nothing", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.term)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.term, diff)
			}
		})
	}
}

func TestResolve_BlankTermSkipsCatalog(t *testing.T) {
	lister := &fakeLister{products: []model.Candidate{product(1, "A")}}
	got, err := New(lister).Resolve(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, lister.calls)
}

func TestResolve_ListingFailureIsCatalogUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := New(&fakeLister{err: cause}).Resolve(context.Background(), "x")
	require.ErrorIs(t, err, lifecycle.ErrCatalogUnavailable)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, model.RCatalogUnavailable, lifecycle.ReasonFromError(err))
}

func TestResolve_CancelledListingKeepsContextError(t *testing.T) {
	_, err := New(&fakeLister{err: context.Canceled}).Resolve(context.Background(), "x")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, model.RCancelled, lifecycle.ReasonFromError(err))
}
