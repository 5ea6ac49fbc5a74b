package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return statusCode(err) == http.StatusTooManyRequests
}

// statusCode returns the HTTP status of a Google API error, or 0.
func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// Classify maps an error from a Google API call onto the facade's kinds:
// 401 is domain.ErrCredentialInvalid, any other 4xx is
// domain.ErrUpstreamRejected, and everything else (5xx, network failures,
// timeouts, undecodable responses) is domain.ErrUpstreamUnavailable.
// The original error stays in the chain.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", domain.ErrCredentialInvalid, err)
		case gerr.Code >= 400 && gerr.Code < 500:
			return fmt.Errorf("%w: %w", domain.ErrUpstreamRejected, err)
		default:
			return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
	}

	// Transport failures, deadlines and undecodable bodies.
	return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}

func isClassified(err error) bool {
	return errors.Is(err, domain.ErrCredentialInvalid) ||
		errors.Is(err, domain.ErrUpstreamRejected) ||
		errors.Is(err, domain.ErrUpstreamUnavailable) ||
		errors.Is(err, domain.ErrUnsupportedExport)
}
