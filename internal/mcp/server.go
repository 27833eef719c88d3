package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fitz/dayslot/internal/mcp/tools"
	"github.com/fitz/dayslot/internal/tasks"
	"github.com/fitz/dayslot/internal/vision"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "dayslot"
	ServerVersion = "v1.0.0"
)

// Server wraps the MCP server with Dayslot-specific configuration
type Server struct {
	mcpServer *mcp.Server
	service   *tasks.Service
	logger    *slog.Logger
	handler   *tools.Handler
}

// NewServer creates a new Dayslot MCP server. The extractor may be nil
// when no vision backend is configured; extract_tickets then reports
// the missing configuration.
func NewServer(service *tasks.Service, extractor vision.Extractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		service:   service,
		logger:    logger,
		handler:   tools.NewHandler(service, extractor, logger),
	}

	s.registerTools()
	return s
}

// registerTools adds all MCP tools to the server
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, tools.AddTicketsTool(), s.handler.HandleAddTickets)
	mcp.AddTool(s.mcpServer, tools.AddMeetingsTool(), s.handler.HandleAddMeetings)
	mcp.AddTool(s.mcpServer, tools.ExtractTicketsTool(), s.handler.HandleExtractTickets)
	mcp.AddTool(s.mcpServer, tools.ListTasksTool(), s.handler.HandleListTasks)
	mcp.AddTool(s.mcpServer, tools.UpdateTaskTitleTool(), s.handler.HandleUpdateTaskTitle)
	mcp.AddTool(s.mcpServer, tools.DeleteTaskTool(), s.handler.HandleDeleteTask)
	mcp.AddTool(s.mcpServer, tools.ScheduleDayTool(), s.handler.HandleScheduleDay)
}

// HTTPHandler returns an http.Handler for the MCP server
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return s.mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Logger: s.logger,
		},
	)
}

// Run starts the MCP server over stdio (for CLI usage)
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
