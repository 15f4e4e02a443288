// Package dashboard parses dashboard flags and launches the HTTP service.
package dashboard

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/launchdash/internal/datasource"
	"github.com/louisbranch/launchdash/internal/layout"
	entrypoint "github.com/louisbranch/launchdash/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/launchdash/internal/platform/grpc"
	dashboardservice "github.com/louisbranch/launchdash/internal/services/dashboard"
	"golang.org/x/sync/errgroup"
)

// Config holds dashboard command configuration.
type Config struct {
	HTTPAddr   string `env:"HTTP_ADDR" envDefault:"localhost:8050"`
	DataPath   string `env:"DATA_PATH" envDefault:"spacex_launch_dash.csv"`
	LayoutPath string `env:"LAYOUT_PATH"`
	// GRPCAddr enables the gRPC health service when set.
	GRPCAddr string `env:"GRPC_ADDR"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "launch dataset (.csv, or .db/.sqlite snapshot)")
	fs.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "optional YAML layout override")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address (disabled when empty)")
}

// Run loads the dataset once and serves the dashboard until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDashboard, func(ctx context.Context) error {
		dataset, err := datasource.Load(ctx, cfg.DataPath)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		pageLayout, err := loadLayout(cfg.LayoutPath)
		if err != nil {
			return err
		}
		log.Printf("dataset loaded path=%s records=%d sites=%d", cfg.DataPath, dataset.Len(), len(dataset.Sites()))

		server, err := dashboardservice.NewServer(ctx, dashboardservice.Config{
			HTTPAddr: cfg.HTTPAddr,
			Dataset:  dataset,
			Layout:   pageLayout,
			Logger:   log.Default(),
		})
		if err != nil {
			return err
		}
		defer server.Close()

		if strings.TrimSpace(cfg.GRPCAddr) == "" {
			return server.ListenAndServe(ctx)
		}
		return serveWithHealth(ctx, server, cfg.GRPCAddr)
	})
}

// serveWithHealth runs the HTTP server next to a gRPC health service. The
// health status is SERVING while both are up; either failing stops the other.
func serveWithHealth(ctx context.Context, server *dashboardservice.Server, grpcAddr string) error {
	healthServer, err := platformgrpc.NewHealthServer(grpcAddr)
	if err != nil {
		return err
	}
	defer healthServer.Close()
	log.Printf("gRPC health listening addr=%s", healthServer.Addr())

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer healthServer.SetServing(entrypoint.ServiceDashboard, false)
		return server.ListenAndServe(groupCtx)
	})
	group.Go(func() error {
		return healthServer.Serve(groupCtx)
	})
	healthServer.SetServing("", true)
	healthServer.SetServing(entrypoint.ServiceDashboard, true)
	return group.Wait()
}

func loadLayout(path string) (layout.Layout, error) {
	if strings.TrimSpace(path) == "" {
		return layout.Default()
	}
	l, err := layout.Load(path)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("load layout: %w", err)
	}
	return l, nil
}
