// Package main probes a running dashboard's gRPC health service.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/louisbranch/launchdash/internal/cmd/healthcheck"
	"github.com/louisbranch/launchdash/internal/platform/config"
)

func main() {
	cfg, err := healthcheck.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := healthcheck.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
