package domain

import "strings"

// Google OAuth scopes understood by gconnect.
const (
	ScopeCalendar         = "https://www.googleapis.com/auth/calendar"
	ScopeCalendarReadonly = "https://www.googleapis.com/auth/calendar.readonly"
	ScopeGmailModify      = "https://www.googleapis.com/auth/gmail.modify"
	ScopeGmailReadonly    = "https://www.googleapis.com/auth/gmail.readonly"
	ScopeDrive            = "https://www.googleapis.com/auth/drive"
	ScopeDriveReadonly    = "https://www.googleapis.com/auth/drive.readonly"
	ScopeDriveFile        = "https://www.googleapis.com/auth/drive.file"
)

// DefaultScopes is the scope set requested at acquisition unless configured
// otherwise. One consent covers all three resource families.
var DefaultScopes = []string{
	ScopeCalendarReadonly,
	ScopeGmailReadonly,
	ScopeDriveReadonly,
}

// impliedBy maps a scope to the broader scopes that also grant it.
var impliedBy = map[string][]string{
	ScopeCalendarReadonly: {ScopeCalendar},
	ScopeGmailReadonly:    {ScopeGmailModify, "https://mail.google.com/"},
	ScopeGmailModify:      {"https://mail.google.com/"},
	ScopeDriveReadonly:    {ScopeDrive},
	ScopeDriveFile:        {ScopeDrive},
}

func scopeGranted(granted []string, want string) bool {
	for _, g := range granted {
		if g == want {
			return true
		}
		for _, broader := range impliedBy[want] {
			if g == broader {
				return true
			}
		}
	}
	return false
}

// UnionScopes merges scope lists preserving first-seen order.
func UnionScopes(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ParseScopes splits a space-separated scope string as returned in the
// "scope" field of an OAuth token response.
func ParseScopes(s string) []string {
	return UnionScopes(strings.Fields(s))
}
