// Package main prints launch outcome summaries for the terminal.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/louisbranch/launchdash/internal/cmd/summary"
	"github.com/louisbranch/launchdash/internal/platform/config"
)

func main() {
	cfg, err := summary.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := summary.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
