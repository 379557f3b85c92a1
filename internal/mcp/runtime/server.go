package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"undoc/internal/core/config"
	"undoc/internal/core/ports"
	"undoc/internal/shared/version"
)

type Dependencies struct {
	Analysis   ports.AnalysisService
	Logger     *slog.Logger
	ConfigPath string
}

// Server exposes the analysis service to MCP clients over stdio.
type Server struct {
	cfg       *config.Config
	deps      Dependencies
	mcpServer *mcp.Server
}

func Build(cfg *config.Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Analysis == nil {
		return nil, fmt.Errorf("analysis service dependency is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Server{
		cfg:  cfg,
		deps: deps,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "undoc",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves until the client disconnects or ctx is cancelled. Stdout
// carries protocol JSON only; callers must log to stderr or a file.
func (s *Server) Run(ctx context.Context) error {
	s.deps.Logger.Info("mcp server active", "transport", "stdio", "config", s.deps.ConfigPath)
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
