package google

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gconnect/internal/logger"
)

// ServiceType identifies a Google API service for rate limiting purposes.
type ServiceType string

const (
	// ServiceGmail is the Gmail API service.
	ServiceGmail ServiceType = "gmail"
	// ServiceDrive is the Google Drive API service.
	ServiceDrive ServiceType = "drive"
	// ServiceCalendar is the Google Calendar API service.
	ServiceCalendar ServiceType = "calendar"
)

// DefaultBackoff applies when a 429 carries no usable Retry-After.
const DefaultBackoff = 30 * time.Second

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Google service.
// Gmail is higher than its quota-unit budget suggests because one unread
// listing issues a metadata get per message.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceGmail:    {RequestsPerSecond: 10.0, BurstSize: 20},
	ServiceDrive:    {RequestsPerSecond: 8.0, BurstSize: 10},
	ServiceCalendar: {RequestsPerSecond: 5.0, BurstSize: 10},
}

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket with a back-off window opened by 429 responses.
// A nil *RateLimiter never limits.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter for service. A positive
// requestsPerSecond overrides the service default.
func NewRateLimiter(service ServiceType, requestsPerSecond float64) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	if requestsPerSecond > 0 {
		cfg = RateLimitConfig{
			RequestsPerSecond: requestsPerSecond,
			BurstSize:         int(math.Max(1, math.Ceil(requestsPerSecond*2))),
		}
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
		now:     time.Now,
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any back-off window opened by Observe.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := retryAt.Sub(r.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// Observe inspects a failed call. A 429 opens a back-off window taken from
// its Retry-After header.
func (r *RateLimiter) Observe(err error) {
	if r == nil || !IsRateLimited(err) {
		return
	}

	var header http.Header
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		header = gerr.Header
	}
	backoff := retryAfter(header, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := r.now().Add(backoff); until.After(r.retryAt) {
		r.retryAt = until
	}
	logger.Warn("%s rate limited, backing off for %s", r.service, backoff)
}

// retryAfter parses a Retry-After header, in seconds or as an HTTP date.
func retryAfter(header http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(header.Get("Retry-After"))
	if v == "" {
		return DefaultBackoff
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return DefaultBackoff
}

// Do waits for the limiter, performs call and classifies its error.
func Do[T any](ctx context.Context, limiter *RateLimiter, call func() (T, error)) (T, error) {
	var zero T
	if err := limiter.Wait(ctx); err != nil {
		return zero, Classify(err)
	}

	res, err := call()
	if err != nil {
		limiter.Observe(err)
		return zero, Classify(err)
	}
	return res, nil
}
