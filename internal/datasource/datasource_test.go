package datasource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	storagesqlite "github.com/louisbranch/launchdash/internal/storage/sqlite"
)

const sampleCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version Category
1,SiteA,1,500,v1.0
2,SiteA,0,900,v1.1
3,SiteB,1,3000,FT
`

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{
		"spacex_launch_dash.csv": KindCSV,
		"launches.db":            KindSQLite,
		"data/LAUNCHES.SQLITE":   KindSQLite,
		"snapshot.sqlite3":       KindSQLite,
		"no-extension":           KindCSV,
	}
	for path, want := range tests {
		if got := KindOf(path); got != want {
			t.Fatalf("KindOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoadCSVAndSQLiteAgree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "launches.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	fromCSV, err := Load(context.Background(), csvPath)
	if err != nil {
		t.Fatalf("Load(csv) error = %v", err)
	}
	if fromCSV.Len() != 3 {
		t.Fatalf("csv records = %d, want 3", fromCSV.Len())
	}

	dbPath := filepath.Join(dir, "launches.db")
	store, err := storagesqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.ReplaceLaunches(context.Background(), csvPath, fromCSV); err != nil {
		t.Fatalf("ReplaceLaunches() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	fromDB, err := Load(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Load(db) error = %v", err)
	}
	if diff := cmp.Diff(fromCSV.Records(), fromDB.Records()); diff != "" {
		t.Fatalf("sqlite dataset mismatch (-csv +db):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(context.Background(), " "); err == nil {
		t.Fatal("expected empty path error")
	}
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected missing file error")
	}
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "empty.db"))
	if !errors.Is(err, storagesqlite.ErrNoSnapshot) {
		t.Fatalf("Load(empty db) error = %v, want %v", err, storagesqlite.ErrNoSnapshot)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, "launches.csv"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load(canceled) error = %v, want %v", err, context.Canceled)
	}
}
