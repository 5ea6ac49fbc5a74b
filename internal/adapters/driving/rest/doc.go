// Package rest exposes the connector facade as a local read-only JSON API
// served with echo.
//
// Routes (all GET):
//
//	/health
//	/calendar/next?max_results=10
//	/calendar/list
//	/gmail/unread?max_results=10
//	/drive/recent?max_results=20
//	/drive/search?name=...&max_results=10
//	/drive/file/:file_id
//
// Failures are rendered as {"detail": "...", "kind": "..."} with status 400
// for invalid input and unsupported exports, and 500 otherwise.
package rest
