package llm

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	breakerTripAfter = 5
	breakerCooldown  = 30 * time.Second
)

// Breaker stops calling a failing provider for a cooldown period. While open,
// calls fail immediately so callers fall back without waiting on timeouts.
// It never retries.
type Breaker struct {
	next Completer
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreaker(name string, next Completer, log *zap.SugaredLogger) *Breaker {
	st := gobreaker.Settings{
		Name:        "llm-" + name,
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("llm circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	st.IsSuccessful = isProviderHealthy

	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[string](st)}
}

// callerGoneError marks a failure caused by the caller's own context ending.
type callerGoneError struct{ err error }

func (e callerGoneError) Error() string { return e.err.Error() }
func (e callerGoneError) Unwrap() error { return e.err }

// isProviderHealthy reports whether err says nothing bad about the provider.
func isProviderHealthy(err error) bool {
	var gone callerGoneError
	return err == nil || errors.As(err, &gone)
}

func (b *Breaker) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	out, err := b.cb.Execute(func() (string, error) {
		out, err := b.next.Complete(ctx, system, user, temperature)
		if err != nil && ctx.Err() != nil {
			return "", callerGoneError{err: err}
		}
		return out, err
	})
	var gone callerGoneError
	if errors.As(err, &gone) {
		return "", gone.err
	}
	return out, err
}

// State reports the breaker state, e.g. "closed" or "open".
func (b *Breaker) State() string {
	return b.cb.State().String()
}
