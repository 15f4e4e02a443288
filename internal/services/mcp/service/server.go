// Package service hosts the launch data MCP server.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/launchdash/internal/dispatch"
	"github.com/louisbranch/launchdash/internal/launch"
	"github.com/louisbranch/launchdash/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "launchdash"
	serverVersion = "0.1.0"
)

// Server wraps an MCP server bound to one launch dataset.
type Server struct {
	mcpServer *mcp.Server
}

// New registers the launch tools over dataset.
func New(dataset launch.Dataset) (*Server, error) {
	if dataset.Len() == 0 {
		return nil, launch.ErrEmptyDataset
	}
	dispatcher, err := dispatch.New(dataset, dispatch.DefaultBindings()...)
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: "Read-only access to launch records. Use launch_sites to discover sites and payload bounds, launch_charts for dashboard chart specifications, and launch_site_summary for outcome tallies.",
	})
	mcp.AddTool(mcpServer, domain.SitesTool(), domain.SitesHandler(dataset))
	mcp.AddTool(mcpServer, domain.ChartsTool(), domain.ChartsHandler(dispatcher))
	mcp.AddTool(mcpServer, domain.SummaryTool(), domain.SummaryHandler(dataset))

	return &Server{mcpServer: mcpServer}, nil
}

// ServeStdio serves MCP over stdin and stdout until ctx ends.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log.Printf("mcp serving name=%s version=%s", serverName, serverVersion)
	err := s.mcpServer.Run(ctx, transport)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}
