// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry re-invokes an operation with exponential backoff. The idea
// generation client never retries on its own; callers that want another
// attempt wrap their call with Do.
package retry

import (
	"context"
	"math"
	"time"
)

// BaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var BaseDelay = time.Second

// Policy decides how many extra attempts to make and which errors earn one.
type Policy struct {
	// MaxRetries is the number of attempts after the first. Zero disables retry.
	MaxRetries int

	// Retryable reports whether err warrants another attempt. Nil retries nothing.
	Retryable func(error) bool

	// OnRetry, when set, is called before each backoff wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// policy's retries run out. The delay starts at BaseDelay and doubles each
// attempt. If ctx is cancelled during a wait Do returns ctx.Err(). After
// exhausting retries the last error from fn is returned unchanged.
func Do(ctx context.Context, p Policy, fn func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || p.Retryable == nil || !p.Retryable(err) {
			return err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * BaseDelay
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, backoff, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}
