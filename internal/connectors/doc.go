// Package connectors holds the upstream provider clients. Each subpackage
// of google implements one driven provider port (calendar, gmail, drive)
// on top of the shared infrastructure in package google.
package connectors
