// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowlist_Authorize(t *testing.T) {
	a := NewAllowlist([]string{"u1", ""}, []string{"r-admin"})

	tests := []struct {
		name  string
		actor Actor
		allow bool
	}{
		{"listed user", Actor{UserID: "u1"}, true},
		{"listed role", Actor{UserID: "u2", RoleIDs: []string{"r-x", "r-admin"}}, true},
		{"unlisted", Actor{UserID: "u2", RoleIDs: []string{"r-x"}}, false},
		{"empty actor", Actor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authorize(tt.actor)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNotAllowed)
			}
		})
	}

	users, roles := a.Size()
	assert.Equal(t, 1, users, "blank ids are dropped")
	assert.Equal(t, 1, roles)
}

func TestAllowlist_EmptyDeniesEveryone(t *testing.T) {
	a := NewAllowlist(nil, nil)
	assert.ErrorIs(t, a.Authorize(Actor{UserID: "anyone"}), ErrNotAllowed)
}

func TestAllowlist_Replace(t *testing.T) {
	a := NewAllowlist([]string{"u1"}, nil)
	a.Replace([]string{"u2"}, nil)

	assert.ErrorIs(t, a.Authorize(Actor{UserID: "u1"}), ErrNotAllowed)
	assert.NoError(t, a.Authorize(Actor{UserID: "u2"}))
}

func TestAllowlist_ConcurrentReplace(t *testing.T) {
	a := NewAllowlist([]string{"u1"}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.Replace([]string{"u1"}, []string{"r"})
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, a.Authorize(Actor{UserID: "u1"}))
		}()
	}
	wg.Wait()
}
