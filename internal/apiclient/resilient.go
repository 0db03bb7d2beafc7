package apiclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/felixgeelhaar/fortify/retry"
)

// ResilienceConfig holds the per-backend resilience settings
type ResilienceConfig struct {
	// EnableCircuitBreaker stops calling a backend after repeated 5xx/network failures
	EnableCircuitBreaker bool `yaml:"circuit_breaker"`

	// EnableRetry retries GET requests on 429/502/503/504
	EnableRetry bool `yaml:"retry"`

	// EnableBulkhead limits concurrent in-flight requests per backend
	EnableBulkhead bool `yaml:"bulkhead"`

	// EnableRateLimit limits request rate per backend
	EnableRateLimit bool `yaml:"rate_limit"`

	MaxAttempts   int           `yaml:"max_attempts"`
	InitialDelay  time.Duration `yaml:"initial_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	Jitter        bool          `yaml:"jitter"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	RatePerSecond int           `yaml:"rate_per_second"`
}

// DefaultResilienceConfig returns defaults suited to interactive use
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		EnableCircuitBreaker: true,
		EnableRetry:          true,
		EnableBulkhead:       true,
		EnableRateLimit:      false,
		MaxAttempts:          3,
		InitialDelay:         200 * time.Millisecond,
		MaxDelay:             2 * time.Second,
		Jitter:               true,
		MaxConcurrent:        8,
		RatePerSecond:        20,
	}
}

// retryableStatus carries a response whose status is worth another attempt.
// It is only an error inside the resilience pipeline; callers get the response.
type retryableStatus struct {
	resp *Response
}

func (e *retryableStatus) Error() string {
	return http.StatusText(e.resp.StatusCode)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

type resilience struct {
	name           string
	circuitBreaker circuitbreaker.CircuitBreaker[*Response]
	retrier        retry.Retry[*Response]
	bulkhead       bulkhead.Bulkhead[*Response]
	rateLimit      ratelimit.RateLimiter
}

func newResilience(name string, cfg ResilienceConfig, logger *slog.Logger) *resilience {
	r := &resilience{name: name}

	if cfg.EnableCircuitBreaker {
		r.circuitBreaker = circuitbreaker.New[*Response](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    30 * time.Second,
			Timeout:     15 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				logger.Warn("circuit breaker state change",
					"client", name,
					"from", from.String(),
					"to", to.String())
			},
		})
	}

	if cfg.EnableRetry {
		attempts := cfg.MaxAttempts
		if attempts <= 0 {
			attempts = 3
		}
		initial := cfg.InitialDelay
		if initial <= 0 {
			initial = 200 * time.Millisecond
		}
		maxDelay := cfg.MaxDelay
		if maxDelay < initial {
			maxDelay = initial
		}
		r.retrier = retry.New[*Response](retry.Config{
			MaxAttempts:   attempts,
			InitialDelay:  initial,
			MaxDelay:      maxDelay,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        cfg.Jitter,
			IsRetryable: func(err error) bool {
				var rs *retryableStatus
				return errors.As(err, &rs)
			},
		})
	}

	if cfg.EnableBulkhead {
		maxConcurrent := cfg.MaxConcurrent
		if maxConcurrent <= 0 {
			maxConcurrent = 8
		}
		r.bulkhead = bulkhead.New[*Response](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
			MaxQueue:      maxConcurrent * 4,
			QueueTimeout:  10 * time.Second,
		})
	}

	if cfg.EnableRateLimit {
		rate := cfg.RatePerSecond
		if rate <= 0 {
			rate = 20
		}
		r.rateLimit = ratelimit.New(&ratelimit.Config{
			Rate:     rate,
			Burst:    rate * 2,
			Interval: time.Second,
		})
	}

	return r
}

// execute runs op through the configured patterns. Only idempotent calls are
// retried. A retryable status that survives every attempt is handed back as
// a normal response so the response interceptors see it exactly once.
func (r *resilience) execute(ctx context.Context, idempotent bool, op func(context.Context) (*Response, error)) (*Response, error) {
	if r.rateLimit != nil && !r.rateLimit.Allow(ctx, r.name) {
		return nil, ErrRateLimited
	}

	operation := func(ctx context.Context) (*Response, error) {
		resp, err := op(ctx)
		if err != nil {
			return nil, err
		}
		if isRetryableStatus(resp.StatusCode) {
			return nil, &retryableStatus{resp: resp}
		}
		return resp, nil
	}

	if r.bulkhead != nil {
		inner := operation
		operation = func(ctx context.Context) (*Response, error) {
			return r.bulkhead.Execute(ctx, inner)
		}
	}

	if r.retrier != nil && idempotent {
		inner := operation
		operation = func(ctx context.Context) (*Response, error) {
			return r.retrier.Do(ctx, inner)
		}
	}

	var (
		resp *Response
		err  error
	)
	if r.circuitBreaker != nil {
		resp, err = r.circuitBreaker.Execute(ctx, operation)
	} else {
		resp, err = operation(ctx)
	}

	var rs *retryableStatus
	if errors.As(err, &rs) {
		return rs.resp, nil
	}
	return resp, err
}

// Close releases the rate limiter
func (r *resilience) Close() error {
	if r.rateLimit != nil {
		return r.rateLimit.Close()
	}
	return nil
}
