// Package mcp provides an MCP (Model Context Protocol) server adapter for gconnect.
// It exposes the read-only Calendar, Gmail and Drive facade as MCP tools so an
// assistant can call it directly.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// ErrMissingConnectorService is returned when the connector service is not provided.
var ErrMissingConnectorService = errors.New("mcp: connector service is required")

// toolError prefixes err with its kind so clients can branch on it.
func toolError(err error) error {
	return fmt.Errorf("%s: %w", domain.KindOf(err), err)
}
