// Package importer loads a launch CSV into the SQLite snapshot store.
package importer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/launchdash/internal/datasource"
	"github.com/louisbranch/launchdash/internal/launch"
	entrypoint "github.com/louisbranch/launchdash/internal/platform/cmd"
	storagesqlite "github.com/louisbranch/launchdash/internal/storage/sqlite"
)

// Config holds importer command configuration.
type Config struct {
	CSVPath string `env:"IMPORT_CSV_PATH" envDefault:"spacex_launch_dash.csv"`
	DBPath  string `env:"DB_PATH" envDefault:"launches.db"`
	DryRun  bool   `env:"IMPORT_DRY_RUN"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.CSVPath, "csv", cfg.CSVPath, "launch CSV to import")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite snapshot path")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "validate without writing to the database")
}

func (c Config) validate() error {
	if strings.TrimSpace(c.CSVPath) == "" {
		return errors.New("csv is required")
	}
	if c.DryRun {
		return nil
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db-path is required")
	}
	if datasource.KindOf(c.DBPath) != datasource.KindSQLite {
		return fmt.Errorf("db-path %q must end in .db, .sqlite or .sqlite3", c.DBPath)
	}
	return nil
}

// Run executes the importer, reporting progress to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceImporter, func(ctx context.Context) error {
		return importCSV(ctx, cfg, out)
	})
}

func importCSV(ctx context.Context, cfg Config, out io.Writer) error {
	dataset, err := launch.LoadCSV(cfg.CSVPath)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		fmt.Fprintf(out, "validated %d launches across %d sites from %s (dry run)\n", dataset.Len(), len(dataset.Sites()), cfg.CSVPath)
		return nil
	}

	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open launch store: %w", err)
	}
	defer store.Close()

	if err := store.ReplaceLaunches(ctx, cfg.CSVPath, dataset); err != nil {
		return fmt.Errorf("replace launches: %w", err)
	}
	info, err := store.LastImport(ctx)
	if err != nil {
		return fmt.Errorf("read launch import: %w", err)
	}
	fmt.Fprintf(out, "imported %d launches across %d sites into %s (source %s at %s)\n",
		info.RecordCount, len(dataset.Sites()), cfg.DBPath, info.Source, info.ImportedAt.Format(time.RFC3339))
	return nil
}
