package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for gconnect resources.
	uriScheme = "gconnect://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "calendars",
		Name:        "calendars",
		Description: "Calendars visible to the signed-in user",
		MIMEType:    "application/json",
	}, s.handleCalendarsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "drive/files/{fileId}",
		Name:        "drive-file",
		Description: "Plain text content of a Google Doc",
		MIMEType:    "text/plain",
	}, s.handleFileResource)

	if s.ports.Credentials != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "auth/status",
			Name:        "auth-status",
			Description: "State of the stored Google credential",
			MIMEType:    "application/json",
		}, s.handleAuthStatusResource)
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleCalendarsResource returns the calendar list as JSON.
func (s *Server) handleCalendarsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cals, err := s.ports.Connector.ListCalendars(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", toolError(err))
	}
	if cals == nil {
		cals = []domain.CalendarInfo{}
	}
	return jsonResource(req.Params.URI, cals)
}

// handleFileResource returns the exported text of a Google Doc.
func (s *Server) handleFileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fileID := extractFileID(req.Params.URI)
	if fileID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Connector.FileContent(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("exporting file: %w", toolError(err))
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content.Content,
		}},
	}, nil
}

// handleAuthStatusResource describes the stored credential without network calls.
func (s *Server) handleAuthStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	status, err := s.ports.Credentials.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading credential status: %w", err)
	}
	return jsonResource(req.Params.URI, status)
}

// extractFileID extracts the file ID from a URI like gconnect://drive/files/{fileId}.
func extractFileID(uri string) string {
	const prefix = uriScheme + "drive/files/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
