package platforms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mww/fantasy_rankings/metrics"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 30 * time.Second

// Upstream is the HTTP client used to talk to a provider. Every request goes
// through an optional rate limiter and a circuit breaker, and is given a fixed
// timeout so a slow provider can't hang a caller forever.
type Upstream struct {
	provider   string
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Metrics
}

type UpstreamOption func(*Upstream)

func WithHeader(key, value string) UpstreamOption {
	return func(u *Upstream) {
		u.headers.Set(key, value)
	}
}

func WithTimeout(d time.Duration) UpstreamOption {
	return func(u *Upstream) {
		if d > 0 {
			u.httpClient.Timeout = d
		}
	}
}

// WithRateLimit allows rps requests per second with bursts of burst.
func WithRateLimit(rps float64, burst int) UpstreamOption {
	return func(u *Upstream) {
		if rps > 0 {
			u.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

func WithMetrics(m *metrics.Metrics) UpstreamOption {
	return func(u *Upstream) {
		u.metrics = m
	}
}

func NewUpstream(provider, baseURL string, logger logrus.FieldLogger, opts ...UpstreamOption) *Upstream {
	u := &Upstream{
		provider: provider,
		baseURL:  baseURL,
		headers:  make(http.Header),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(u)
	}

	u.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        provider,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A 4xx means the request was wrong, not that the provider is down.
		// Neither does a caller that went away.
		IsSuccessful: func(err error) bool {
			var cg *callerGoneError
			if errors.As(err, &cg) {
				return true
			}
			var ue *UpstreamError
			if errors.As(err, &ue) {
				return ue.StatusCode >= 400 && ue.StatusCode < 500
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"provider":  name,
				"from":      from.String(),
				"to":        to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	return u
}

func (u *Upstream) BaseURL() string {
	return u.baseURL
}

// GetJSON fetches baseURL+path and decodes the JSON body into res.
func (u *Upstream) GetJSON(ctx context.Context, res any, path string) error {
	start := time.Now()
	_, err := u.breaker.Execute(func() (any, error) {
		err := u.get(ctx, res, path)
		if err != nil && ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return nil, &callerGoneError{err: err}
		}
		return nil, err
	})
	u.metrics.ObserveUpstream(u.provider, outcome(err), time.Since(start))

	var cg *callerGoneError
	if errors.As(err, &cg) {
		err = cg.err
	}

	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	// Open breaker errors.
	return &UpstreamError{Provider: u.provider, Path: path, Err: err}
}

// callerGoneError marks a request that failed because the caller's context
// ended. The breaker does not count it against the provider.
type callerGoneError struct {
	err error
}

func (e *callerGoneError) Error() string {
	return e.err.Error()
}

func (e *callerGoneError) Unwrap() error {
	return e.err
}

func (u *Upstream) get(ctx context.Context, res any, path string) error {
	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			// Wait only fails when ctx is done or its deadline is too close.
			return &callerGoneError{err: &UpstreamError{Provider: u.provider, Path: path, Err: fmt.Errorf("error waiting for rate limiter: %w", err)}}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+path, nil)
	if err != nil {
		return &UpstreamError{Provider: u.provider, Path: path, Err: fmt.Errorf("error creating http request: %w", err)}
	}
	for k, v := range u.headers {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Provider: u.provider, Path: path, Err: fmt.Errorf("error sending http request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Provider: u.provider, Path: path, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return &UpstreamError{Provider: u.provider, Path: path, Err: fmt.Errorf("error parsing response: %w", err)}
	}
	return nil
}

func outcome(err error) string {
	var ue *UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.As(err, &ue) && ue.StatusCode != 0:
		return fmt.Sprintf("status_%d", ue.StatusCode)
	default:
		return "error"
	}
}
