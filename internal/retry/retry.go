// Package retry implements the bounded polling loop OrderWallet uses to
// wait for chain state (a newly funded UTXO, a confirmed transaction) to
// become observable after a broadcast.
package retry

import (
	"context"
	"fmt"
	"time"
)

// BackoffStrategy returns how long to wait before attempt n+1, given that
// attempt n just failed.
type BackoffStrategy interface {
	Delay(attempt int) time.Duration
}

// FixedDelay waits the same duration between every attempt, matching the
// original wallet's crude fetch_utxo_details_with_retry loop.
type FixedDelay time.Duration

func (d FixedDelay) Delay(int) time.Duration { return time.Duration(d) }

// ExponentialBackoff doubles the delay on each attempt starting from Base,
// capped at Max.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	d := b.Base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= b.Max {
			return b.Max
		}
	}
	return d
}

// Poll calls fn up to attempts times, waiting according to strategy between
// tries, until fn returns a nil error. It returns fn's final result and
// error if every attempt fails, or ctx's error if ctx is cancelled first.
func Poll[T any](ctx context.Context, attempts int, strategy BackoffStrategy, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(strategy.Delay(attempt)):
		}
	}
	return result, fmt.Errorf("exhausted %d attempts: %w", attempts, err)
}
