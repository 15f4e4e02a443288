// Package healthcheck probes the dashboard's gRPC health service.
package healthcheck

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/launchdash/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/launchdash/internal/platform/grpc"
	"github.com/louisbranch/launchdash/internal/platform/timeouts"
)

// Config holds healthcheck command configuration.
type Config struct {
	GRPCAddr string        `env:"GRPC_ADDR" envDefault:"localhost:8051"`
	Service  string        `env:"HEALTHCHECK_SERVICE" envDefault:"dashboard"`
	Timeout  time.Duration `env:"HEALTHCHECK_TIMEOUT" envDefault:"5s"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.GRPCAddr) == "" {
		return Config{}, errors.New("grpc-addr is required")
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "dashboard gRPC health address")
	fs.StringVar(&cfg.Service, "service", cfg.Service, "health service name (empty for the whole process)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum time to wait for SERVING")
}

// Run probes cfg.GRPCAddr and writes the result to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.HealthProbe
	}
	if err := platformgrpc.Probe(ctx, cfg.GRPCAddr, cfg.Service, timeout, nil); err != nil {
		return fmt.Errorf("%s %s: %w", entrypoint.ServiceHealthcheck, cfg.GRPCAddr, err)
	}
	_, err := fmt.Fprintf(out, "%s is SERVING at %s\n", serviceLabel(cfg.Service), cfg.GRPCAddr)
	return err
}

func serviceLabel(service string) string {
	if strings.TrimSpace(service) == "" {
		return "process"
	}
	return service
}
