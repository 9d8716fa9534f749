// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package readiness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/config"
	"github.com/platform-engineering-labs/bedrock-kb-index/pkg/helper"
)

// ErrNotReady is matched by every NotReadyError.
var ErrNotReady = errors.New("collection not ready")

// NotReadyError is returned when the collection kept failing with transient
// errors until the attempts ran out or the context ended.
type NotReadyError struct {
	Attempts int
	Last     error
	// Interrupted is the context cause when the wait was cut short.
	Interrupted error
}

func (e *NotReadyError) Error() string {
	if e.Interrupted != nil {
		return fmt.Sprintf("collection not ready after %d attempts (%v), last error: %v", e.Attempts, e.Interrupted, e.Last)
	}
	return fmt.Sprintf("collection not ready after %d attempts, last error: %v", e.Attempts, e.Last)
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

func (e *NotReadyError) Unwrap() error {
	return e.Last
}

type Prober interface {
	Probe(ctx context.Context) error
}

type Poller struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Rand returns values in [0, 1) used for jitter.
	Rand   func() float64
	Logger *slog.Logger
}

func New(cfg config.Readiness) *Poller {
	return &Poller{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
		Rand:        rand.Float64,
		Logger:      slog.Default(),
	}
}

// Wait blocks until prober succeeds. Transient failures are retried with
// jittered exponential backoff; any other failure is returned at once.
func (p *Poller) Wait(ctx context.Context, prober Prober) error {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}
	random := p.Rand
	if random == nil {
		random = rand.Float64
	}

	var (
		attempts int
		last     error
		fatal    error
	)

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		log.Info("Probing collection", "attempt", attempts, "max_attempts", maxAttempts)

		err := prober.Probe(ctx)
		if err == nil {
			return struct{}{}, nil
		}
		last = err
		if ctx.Err() != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		if !helper.IsTransient(err) {
			fatal = err
			return struct{}{}, backoff.Permanent(err)
		}
		log.Warn("Collection not reachable yet", "attempt", attempts, "error", err)
		return struct{}{}, err
	},
		backoff.WithBackOff(&schedule{base: p.BaseDelay, max: p.MaxDelay, rand: random}),
		backoff.WithMaxTries(uint(maxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Info("Waiting before next probe", "attempt", attempts, "wait", wait.Round(100*time.Millisecond).String())
		}),
	)

	switch {
	case err == nil:
		log.Info("Collection is ready", "attempts", attempts)
		return nil
	case fatal != nil:
		log.Error("Collection probe failed with a non-transient error", "attempt", attempts, "error", fatal)
		return fmt.Errorf("probing collection: %w", fatal)
	}

	notReady := &NotReadyError{Attempts: attempts, Last: last}
	if ctx.Err() != nil {
		notReady.Interrupted = context.Cause(ctx)
	}
	log.Error("Collection did not become ready", "attempts", attempts, "error", last)
	return notReady
}
