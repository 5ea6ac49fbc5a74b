// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CredentialStore: Credential persistence (file, SQLite or memory)
//   - ClientConfigSource: OAuth client registration
//   - CredentialAcquirer: Obtains a new credential (consent)
//   - TokenRefresher: Renews an expired access token
//   - CalendarProvider, MailProvider, FileProvider: Google API clients
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
