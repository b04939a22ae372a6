// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package auth decides who may invoke privileged bot commands.
package auth

import (
	"errors"
	"sync"
)

// ErrNotAllowed is returned when an invoker matches neither a user nor a role entry.
var ErrNotAllowed = errors.New("auth: invoker is not allow-listed")

// Actor is the identity of a command invoker as reported by the chat platform.
type Actor struct {
	UserID  string
	RoleIDs []string
}

// Allowlist grants access by user id or by guild role id. It is safe for
// concurrent use and can be replaced wholesale on config reload.
type Allowlist struct {
	mu    sync.RWMutex
	users map[string]struct{}
	roles map[string]struct{}
}

func NewAllowlist(users, roles []string) *Allowlist {
	a := &Allowlist{}
	a.Replace(users, roles)
	return a
}

// Replace swaps both lists atomically.
func (a *Allowlist) Replace(users, roles []string) {
	u, r := toSet(users), toSet(roles)
	a.mu.Lock()
	a.users, a.roles = u, r
	a.mu.Unlock()
}

// Authorize returns nil when the actor is allowed, ErrNotAllowed otherwise.
// An empty allow-list denies everyone.
func (a *Allowlist) Authorize(actor Actor) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if actor.UserID != "" {
		if _, ok := a.users[actor.UserID]; ok {
			return nil
		}
	}
	for _, role := range actor.RoleIDs {
		if _, ok := a.roles[role]; ok {
			return nil
		}
	}
	return ErrNotAllowed
}

// Size reports the number of user and role entries.
func (a *Allowlist) Size() (users, roles int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.users), len(a.roles)
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
