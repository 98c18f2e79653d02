package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"food_maps/internal/domain"
)

func TestRetryPolicy_WaitStaysWithinJitter(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Delay: 50 * time.Millisecond, Jitter: 20 * time.Millisecond}
	err := fmt.Errorf("%w: 503", domain.ErrProviderTransient)

	seen := map[time.Duration]bool{}
	for i := 0; i < 500; i++ {
		d := p.wait(err)
		assert.GreaterOrEqual(t, d, p.Delay)
		assert.Less(t, d, p.Delay+p.Jitter)
		seen[d] = true
	}
	assert.Greater(t, len(seen), 1, "jitter never varied the wait")
}

func TestRetryPolicy_WaitWithoutJitterIsDelay(t *testing.T) {
	p := RetryPolicy{Delay: 7 * time.Millisecond}
	assert.Equal(t, 7*time.Millisecond, p.wait(errors.New("x")))
}

func TestRetryPolicy_WaitPrefersLongerRetryAfter(t *testing.T) {
	p := RetryPolicy{Delay: 10 * time.Millisecond, Jitter: 5 * time.Millisecond}

	longer := fmt.Errorf("google: %w", &StatusError{Status: http.StatusTooManyRequests, RetryAfter: 2 * time.Second})
	assert.Equal(t, 2*time.Second, p.wait(longer))

	shorter := &StatusError{Status: http.StatusServiceUnavailable, RetryAfter: time.Millisecond}
	d := p.wait(shorter)
	assert.GreaterOrEqual(t, d, p.Delay)
	assert.Less(t, d, p.Delay+p.Jitter)
}
