package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the failure taxonomy of the facade.
// Adapters wrap them with context; driving adapters map them to status codes
// through KindOf.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// Credential Errors.

	// ErrMissingClientConfig indicates the OAuth client configuration is absent.
	ErrMissingClientConfig = errors.New("missing client configuration")

	// ErrAuthFlowRequired indicates user consent is needed and cannot be
	// obtained in the current context.
	ErrAuthFlowRequired = errors.New("authorization flow required")

	// ErrRefreshFailed indicates the authorization server rejected the refresh
	// or could not be reached.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrCredentialInvalid indicates the provider rejected the access token.
	// The facade retries once with a forced refresh.
	ErrCredentialInvalid = errors.New("credential rejected by provider")

	// Provider Errors.

	// ErrUpstreamUnavailable indicates a network failure, timeout or 5xx.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamRejected indicates a 4xx response other than 401.
	ErrUpstreamRejected = errors.New("upstream rejected request")

	// ErrUnsupportedExport indicates a file kind that cannot be exported as text.
	ErrUnsupportedExport = errors.New("unsupported export")

	// ErrAggregationFailed indicates a fan-out source failed and the
	// aggregate could not be produced.
	ErrAggregationFailed = errors.New("aggregation failed")
)

// UnsupportedExportError carries the offending MIME type.
type UnsupportedExportError struct {
	MimeType string
}

func (e *UnsupportedExportError) Error() string {
	return "Unsupported mimeType for content export: " + e.MimeType
}

// Is reports ErrUnsupportedExport as the error's category.
func (e *UnsupportedExportError) Is(target error) bool {
	return target == ErrUnsupportedExport
}

// ErrorKind is the machine-readable category of a failure.
type ErrorKind string

// Error kinds exposed to clients.
const (
	KindMissingClientConfig ErrorKind = "missing_client_config"
	KindAuthFlowRequired    ErrorKind = "auth_flow_required"
	KindRefreshFailed       ErrorKind = "refresh_failed"
	KindCredentialInvalid   ErrorKind = "credential_invalid"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindUpstreamRejected    ErrorKind = "upstream_rejected"
	KindUnsupportedExport   ErrorKind = "unsupported_export"
	KindAggregationFailed   ErrorKind = "aggregation_failed"
	KindInvalidInput        ErrorKind = "invalid_input"
	KindNotFound            ErrorKind = "not_found"
	KindInternal            ErrorKind = "internal"
)

// kindOrder lists categories from most to least specific. The first match
// wins, so a refresh failure joined with an acquisition failure reports as
// a refresh failure.
var kindOrder = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidInput, KindInvalidInput},
	{ErrUnsupportedExport, KindUnsupportedExport},
	{ErrMissingClientConfig, KindMissingClientConfig},
	{ErrRefreshFailed, KindRefreshFailed},
	{ErrAuthFlowRequired, KindAuthFlowRequired},
	{ErrCredentialInvalid, KindCredentialInvalid},
	{ErrAggregationFailed, KindAggregationFailed},
	{ErrUpstreamUnavailable, KindUpstreamUnavailable},
	{ErrUpstreamRejected, KindUpstreamRejected},
	{ErrNotFound, KindNotFound},
}

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range kindOrder {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// InvalidInputf returns an ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
