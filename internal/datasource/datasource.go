// Package datasource loads the launch dataset from a CSV file or a SQLite
// snapshot, picked by file extension.
package datasource

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/louisbranch/launchdash/internal/launch"
	storagesqlite "github.com/louisbranch/launchdash/internal/storage/sqlite"
)

// Kind names the storage format behind a data path.
type Kind string

const (
	KindCSV    Kind = "csv"
	KindSQLite Kind = "sqlite"
)

// KindOf classifies path by extension. Anything that is not a SQLite
// extension is read as CSV.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return KindCSV
	}
}

// Load reads the dataset at path.
func Load(ctx context.Context, path string) (launch.Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return launch.Dataset{}, fmt.Errorf("data path is required")
	}
	switch KindOf(path) {
	case KindSQLite:
		store, err := storagesqlite.Open(path)
		if err != nil {
			return launch.Dataset{}, fmt.Errorf("open launch store: %w", err)
		}
		defer store.Close()
		dataset, err := store.ListLaunches(ctx)
		if err != nil {
			return launch.Dataset{}, fmt.Errorf("load %s: %w", path, err)
		}
		return dataset, nil
	default:
		if err := ctx.Err(); err != nil {
			return launch.Dataset{}, err
		}
		return launch.LoadCSV(path)
	}
}
