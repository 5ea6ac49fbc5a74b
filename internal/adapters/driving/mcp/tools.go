package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// Default result counts when a tool call omits max_results.
const (
	defaultCalendarMax = 10
	defaultGmailMax    = 10
	defaultRecentMax   = 20
	defaultSearchMax   = 10
)

// LimitInput is the input schema for list tools.
type LimitInput struct {
	MaxResults int `json:"max_results,omitempty" jsonschema:"maximum number of results to return"`
}

// SearchInput is the input schema for the drive_search tool.
type SearchInput struct {
	Name       string `json:"name" jsonschema:"text the file name must contain"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// FileInput is the input schema for the drive_file_content tool.
type FileInput struct {
	FileID string `json:"file_id" jsonschema:"the Drive file id of a Google Doc"`
}

// EventsOutput is the output schema for calendar_next.
type EventsOutput struct {
	Events []domain.NormalizedEvent `json:"events"`
	Count  int                      `json:"count"`
}

// CalendarsOutput is the output schema for calendar_list.
type CalendarsOutput struct {
	Calendars []domain.CalendarInfo `json:"calendars"`
	Count     int                   `json:"count"`
}

// MessagesOutput is the output schema for gmail_unread.
type MessagesOutput struct {
	Messages []domain.NormalizedMessage `json:"messages"`
	Count    int                        `json:"count"`
}

// FilesOutput is the output schema for drive_recent and drive_search.
type FilesOutput struct {
	Files []domain.NormalizedFile `json:"files"`
	Count int                     `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calendar_next",
		Description: "Upcoming events across the configured calendars, earliest first",
	}, s.handleCalendarNext)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calendar_list",
		Description: "Calendars visible to the signed-in user",
	}, s.handleCalendarList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "gmail_unread",
		Description: "Unread messages in the inbox",
	}, s.handleGmailUnread)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_recent",
		Description: "Recently modified Drive files",
	}, s.handleDriveRecent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_search",
		Description: "Drive files whose name contains the given text",
	}, s.handleDriveSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_file_content",
		Description: "Plain text content of a Google Doc",
	}, s.handleDriveFileContent)
}

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

func (s *Server) handleCalendarNext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LimitInput,
) (*mcp.CallToolResult, EventsOutput, error) {
	events, err := s.ports.Connector.UpcomingEvents(ctx, orDefault(input.MaxResults, defaultCalendarMax))
	if err != nil {
		return nil, EventsOutput{}, toolError(err)
	}
	return nil, EventsOutput{Events: events, Count: len(events)}, nil
}

func (s *Server) handleCalendarList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, CalendarsOutput, error) {
	cals, err := s.ports.Connector.ListCalendars(ctx)
	if err != nil {
		return nil, CalendarsOutput{}, toolError(err)
	}
	return nil, CalendarsOutput{Calendars: cals, Count: len(cals)}, nil
}

func (s *Server) handleGmailUnread(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LimitInput,
) (*mcp.CallToolResult, MessagesOutput, error) {
	msgs, err := s.ports.Connector.UnreadMessages(ctx, orDefault(input.MaxResults, defaultGmailMax))
	if err != nil {
		return nil, MessagesOutput{}, toolError(err)
	}
	return nil, MessagesOutput{Messages: msgs, Count: len(msgs)}, nil
}

func (s *Server) handleDriveRecent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LimitInput,
) (*mcp.CallToolResult, FilesOutput, error) {
	files, err := s.ports.Connector.RecentFiles(ctx, orDefault(input.MaxResults, defaultRecentMax))
	if err != nil {
		return nil, FilesOutput{}, toolError(err)
	}
	return nil, FilesOutput{Files: files, Count: len(files)}, nil
}

func (s *Server) handleDriveSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, FilesOutput, error) {
	files, err := s.ports.Connector.SearchFiles(ctx, input.Name, orDefault(input.MaxResults, defaultSearchMax))
	if err != nil {
		return nil, FilesOutput{}, toolError(err)
	}
	return nil, FilesOutput{Files: files, Count: len(files)}, nil
}

func (s *Server) handleDriveFileContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, domain.NormalizedFileContent, error) {
	content, err := s.ports.Connector.FileContent(ctx, input.FileID)
	if err != nil {
		return nil, domain.NormalizedFileContent{}, toolError(err)
	}
	return nil, *content, nil
}
