// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package ratelimit throttles command invocations per user.
package ratelimit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var rateLimitExceeded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "statusbot",
		Name:      "ratelimit_exceeded_total",
		Help:      "Command invocations rejected by the per-user throttle",
	},
	[]string{"command"},
)

// Config holds the per-user limit. A zero Rate disables throttling.
type Config struct {
	Rate  rate.Limit
	Burst int
	// IdleTTL drops limiters of users not seen for this long.
	IdleTTL time.Duration
}

type userEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserLimiter keeps one token bucket per user.
type UserLimiter struct {
	mu          sync.Mutex
	cfg         Config
	users       map[string]*userEntry
	lastCleanup time.Time
	now         func() time.Time
}

// New creates a per-user limiter. A non-positive rate disables throttling.
func New(cfg Config) *UserLimiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &UserLimiter{
		cfg:         cfg,
		users:       make(map[string]*userEntry),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// Allow reports whether userID may invoke command now and consumes a token if so.
func (l *UserLimiter) Allow(userID, command string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg.Rate <= 0 {
		return true
	}

	now := l.now()
	e, ok := l.users[userID]
	if !ok {
		e = &userEntry{limiter: rate.NewLimiter(l.cfg.Rate, l.burst())}
		l.users[userID] = e
	}
	e.lastSeen = now
	l.maybeCleanup(now)

	if !e.limiter.AllowN(now, 1) {
		rateLimitExceeded.WithLabelValues(command).Inc()
		return false
	}
	return true
}

// Update applies a new limit. Existing buckets are reset.
func (l *UserLimiter) Update(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = l.cfg.IdleTTL
	}
	l.cfg = cfg
	l.users = make(map[string]*userEntry)
}

// Tracked returns the number of users with a live bucket.
func (l *UserLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users)
}

func (l *UserLimiter) burst() int {
	if l.cfg.Burst < 1 {
		return 1
	}
	return l.cfg.Burst
}

// maybeCleanup drops idle users at most once per IdleTTL. Caller holds mu.
func (l *UserLimiter) maybeCleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.cfg.IdleTTL {
		return
	}
	for id, e := range l.users {
		if now.Sub(e.lastSeen) >= l.cfg.IdleTTL {
			delete(l.users, id)
		}
	}
	l.lastCleanup = now
}
