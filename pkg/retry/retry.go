// Package retry runs backend operations with a bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	apperrors "github.com/segyhp/lending-engine/pkg/errors"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = time.Second
)

// Executor retries failed operations according to their error kind.
// VALIDATION and AUTH failures, and SERVER failures marked permanent, are returned
// after one call. Anything else is retried up to MaxRetries times with doubling delays.
type Executor struct {
	maxRetries   int
	initialDelay time.Duration
	sleep        func(time.Duration)
	log          *logrus.Entry
}

// New creates an executor. A nil logger falls back to the logrus standard logger.
func New(maxRetries int, initialDelay time.Duration, log *logrus.Logger) *Executor {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Executor{
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		sleep:        time.Sleep,
		log:          log.WithField("component", "retry"),
	}
}

// NewDefault creates an executor with 3 retries starting at one second.
func NewDefault(log *logrus.Logger) *Executor {
	return New(DefaultMaxRetries, DefaultInitialDelay, log)
}

// WithSleeper replaces the function used to wait between attempts.
func (e *Executor) WithSleeper(sleep func(time.Duration)) *Executor {
	e.sleep = sleep
	return e
}

func (e *Executor) schedule() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.initialDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = e.initialDelay << e.maxRetries
	b.Reset()
	return b
}

// Run executes op, retrying when the failure allows it.
func (e *Executor) Run(ctx context.Context, op func(ctx context.Context) error) error {
	_, err := Do(ctx, e, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Do executes op with the executor's retry policy and returns its result.
func Do[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	delays := e.schedule()

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if !apperrors.IsRetryable(err) {
			return zero, err
		}
		if attempt >= e.maxRetries || ctx.Err() != nil {
			return zero, apperrors.WrapRetriesExhausted(err)
		}

		delay := delays.NextBackOff()
		e.log.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay.String(),
			"kind":    apperrors.KindOf(err),
			"error":   err.Error(),
		}).Warn("Operation failed, retrying")
		e.sleep(delay)

		if ctx.Err() != nil {
			return zero, apperrors.WrapRetriesExhausted(err)
		}
	}
}
