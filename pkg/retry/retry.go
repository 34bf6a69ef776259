package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Policy runs fn until it succeeds, the error is permanent, attempts run out
// or ctx is done.
type Policy interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	// Retryable overrides the default message-based classification.
	Retryable func(error) bool
	// OnRetry is called before sleeping ahead of attempt+1.
	OnRetry func(attempt int, err error, wait time.Duration)
}

func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Multiplier:  2.0,
	}
}

// Backoff waits BaseDelay*Multiplier^(attempt-1), capped at MaxDelay,
// between attempts.
type Backoff struct {
	cfg   Config
	sleep func(ctx context.Context, d time.Duration) error
}

// NewBackoff applies DefaultConfig when cfg is nil and fills zero fields.
func NewBackoff(cfg *Config) *Backoff {
	defaults := DefaultConfig()
	if cfg == nil {
		cfg = defaults
	}

	resolved := *cfg
	if resolved.MaxAttempts <= 0 {
		resolved.MaxAttempts = 1
	}
	if resolved.Multiplier < 1 {
		resolved.Multiplier = 1
	}
	if resolved.MaxDelay <= 0 {
		resolved.MaxDelay = defaults.MaxDelay
	}
	if resolved.Retryable == nil {
		resolved.Retryable = IsTransientMessage
	}

	return &Backoff{cfg: resolved, sleep: sleepContext}
}

func (b *Backoff) Delay(attempt int) time.Duration {
	delay := float64(b.cfg.BaseDelay) * math.Pow(b.cfg.Multiplier, float64(attempt-1))
	return time.Duration(min(delay, float64(b.cfg.MaxDelay)))
}

func (b *Backoff) Do(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= b.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !b.cfg.Retryable(lastErr) {
			return lastErr
		}
		if attempt == b.cfg.MaxAttempts {
			break
		}

		wait := b.Delay(attempt)
		if b.cfg.OnRetry != nil {
			b.cfg.OnRetry(attempt, lastErr, wait)
		}
		if err := b.sleep(ctx, wait); err != nil {
			return err
		}
	}

	return &ExhaustedError{Attempts: b.cfg.MaxAttempts, Last: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"temporary failure",
	"service unavailable",
	"too many requests",
	"bad gateway",
	"gateway timeout",
}

// IsTransientMessage is the fallback classifier for errors that carry no type
// information beyond their text.
func IsTransientMessage(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// ExhaustedError is returned when every attempt failed with a retryable error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}
