// Package domain defines the core business entities for gconnect.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credential: The delegated OAuth token and its granted scopes
//   - ClientConfig: The OAuth application registration
//   - Raw records: Provider payloads before normalisation
//   - Normalised records: The stable response shapes of the facade
//   - Errors: The failure taxonomy and its kinds
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
