// Package mcp parses MCP command flags and serves launch tools over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/louisbranch/launchdash/internal/datasource"
	entrypoint "github.com/louisbranch/launchdash/internal/platform/cmd"
	mcpservice "github.com/louisbranch/launchdash/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	DataPath string `env:"DATA_PATH" envDefault:"spacex_launch_dash.csv"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "launch dataset (.csv, or .db/.sqlite snapshot)")
}

// Run loads the dataset and serves MCP over stdio until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		server, err := newServer(ctx, cfg)
		if err != nil {
			return err
		}
		return server.ServeStdio(ctx)
	})
}

func newServer(ctx context.Context, cfg Config) (*mcpservice.Server, error) {
	dataset, err := datasource.Load(ctx, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return mcpservice.New(dataset)
}
