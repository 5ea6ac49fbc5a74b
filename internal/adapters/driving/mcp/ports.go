package mcp

import (
	"github.com/custodia-labs/gconnect/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Connector serves calendar, mail and drive reads.
	Connector driving.ConnectorService

	// Credentials reports the stored credential. Optional.
	Credentials driving.CredentialService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Connector == nil {
		return ErrMissingConnectorService
	}
	return nil
}
