// Package google provides shared infrastructure for the Google API providers.
//
// This package contains common utilities used by the calendar, gmail and drive
// providers including:
//   - TokenSource built from the facade's credential
//   - Service factories for creating Google API clients
//   - Classification of Google API errors into the facade's error kinds
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
// Each provider creates an authenticated client per call and funnels the
// request through Do:
//
//	svc, err := google.NewCalendarService(ctx, cred, opts)
//	events, err := google.Do(ctx, limiter, func() (*calendar.Events, error) {
//		return svc.Events.List("primary").Context(ctx).Do()
//	})
//
// # OAuth2 Scopes
//
// The providers need only read access:
//   - https://www.googleapis.com/auth/calendar.readonly (sensitive)
//   - https://www.googleapis.com/auth/gmail.readonly (restricted)
//   - https://www.googleapis.com/auth/drive.readonly (restricted)
//
// For user-created internal apps, restricted scopes don't require verification.
package google
