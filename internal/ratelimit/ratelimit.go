// Package ratelimit provides the per-source minimum-interval gate that
// every adapter passes through before touching the network.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces calls on a single source at least one interval apart.
// State is private to one source instance; concurrent callers on the
// same instance are serialized by the underlying limiter.
type Limiter struct {
	rl *rate.Limiter
}

// New creates a Limiter allowing rpm requests per minute. rpm <= 0
// means unlimited.
func New(rpm int) *Limiter {
	if rpm <= 0 {
		return &Limiter{}
	}
	return &Limiter{
		rl: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

// Wait blocks until the caller may proceed, or until ctx is done. An
// unlimited Limiter (or nil receiver) returns immediately.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.rl == nil {
		return nil
	}
	return l.rl.Wait(ctx)
}
