// Package sqlite persists launch dataset snapshots in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/launchdash/internal/launch"
	"github.com/louisbranch/launchdash/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/launchdash/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// ErrNoSnapshot reports a store that has never received an import.
var ErrNoSnapshot = errors.New("no launch snapshot imported")

// Store persists one launch dataset snapshot.
type Store struct {
	sqlDB *sql.DB
}

// Import describes the most recent snapshot write.
type Import struct {
	Source      string
	RecordCount int
	ImportedAt  time.Time
}

// Open opens a SQLite launch store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReplaceLaunches swaps the stored snapshot for dataset in one transaction.
func (s *Store) ReplaceLaunches(ctx context.Context, source string, dataset launch.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if dataset.Len() == 0 {
		return launch.ErrEmptyDataset
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace launches: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM launches`); err != nil {
		return fmt.Errorf("clear launches: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO launches (
		   seq,
		   launch_site,
		   class,
		   payload_mass_kg,
		   booster_version_category
		 ) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert launch: %w", err)
	}
	defer stmt.Close()

	for idx := range dataset.Len() {
		record := dataset.At(idx)
		if _, err := stmt.ExecContext(
			ctx,
			idx,
			record.Site,
			int(record.Class),
			record.PayloadMassKG,
			record.BoosterVersionCategory,
		); err != nil {
			return fmt.Errorf("insert launch %d: %w", idx, err)
		}
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO launch_imports (id, source, record_count, imported_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   source = excluded.source,
		   record_count = excluded.record_count,
		   imported_at = excluded.imported_at`,
		strings.TrimSpace(source),
		dataset.Len(),
		time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("record launch import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace launches: %w", err)
	}
	return nil
}

// ListLaunches loads the stored snapshot in import order.
func (s *Store) ListLaunches(ctx context.Context) (launch.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return launch.Dataset{}, err
	}
	if s == nil || s.sqlDB == nil {
		return launch.Dataset{}, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT launch_site, class, payload_mass_kg, booster_version_category
		 FROM launches
		 ORDER BY seq`)
	if err != nil {
		return launch.Dataset{}, fmt.Errorf("list launches: %w", err)
	}
	defer rows.Close()

	var records []launch.Record
	for rows.Next() {
		var (
			record launch.Record
			class  int
		)
		if err := rows.Scan(&record.Site, &class, &record.PayloadMassKG, &record.BoosterVersionCategory); err != nil {
			return launch.Dataset{}, fmt.Errorf("scan launch: %w", err)
		}
		record.Class = launch.Outcome(class)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return launch.Dataset{}, fmt.Errorf("iterate launches: %w", err)
	}
	if len(records) == 0 {
		return launch.Dataset{}, ErrNoSnapshot
	}
	return launch.NewDataset(records)
}

// LastImport returns metadata about the stored snapshot.
func (s *Store) LastImport(ctx context.Context) (Import, error) {
	if err := ctx.Err(); err != nil {
		return Import{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Import{}, fmt.Errorf("storage is not configured")
	}
	var (
		info       Import
		importedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `SELECT source, record_count, imported_at FROM launch_imports WHERE id = 1`).
		Scan(&info.Source, &info.RecordCount, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Import{}, ErrNoSnapshot
	}
	if err != nil {
		return Import{}, fmt.Errorf("get launch import: %w", err)
	}
	info.ImportedAt = time.UnixMilli(importedAt).UTC()
	return info, nil
}
