package httpx

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"food_maps/internal/adapters/observability"
	"food_maps/internal/domain"
)

// RetryPolicy retries transient provider errors a bounded number of times,
// sleeping Delay plus a random jitter in [0, Jitter) between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Jitter      time.Duration
}

// Do runs fn until it succeeds, fails with a non-transient error, or the
// attempts run out. The last error is returned unchanged.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrProviderTransient) || i == attempts {
			return err
		}

		wait := p.wait(err)
		observability.ObserveRetry(op, err)
		log.Warn().Err(err).Str("op", op).Int("attempt", i).Dur("wait", wait).Msg("retrying")
		if !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
	return err
}

func (p RetryPolicy) wait(err error) time.Duration {
	d := p.Delay
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	// prefer server-provided Retry-After when it asks for longer
	var se *StatusError
	if errors.As(err, &se) && se.RetryAfter > d {
		d = se.RetryAfter
	}
	return d
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
