package launch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Required CSV header names.
const (
	ColumnSite    = "Launch Site"
	ColumnClass   = "class"
	ColumnPayload = "Payload Mass (kg)"
	ColumnBooster = "Booster Version Category"
)

var (
	// ErrMissingColumn reports a CSV header without one of the required columns.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyDataset reports a source that holds no launch records.
	ErrEmptyDataset = errors.New("dataset has no launch records")
)

type columnIndex struct {
	site    int
	class   int
	payload int
	booster int
}

// LoadCSV reads a launch dataset from a CSV file.
func LoadCSV(path string) (Dataset, error) {
	cleanPath := filepath.Clean(strings.TrimSpace(path))
	if cleanPath == "." || cleanPath == "" {
		return Dataset{}, fmt.Errorf("csv path is required")
	}
	file, err := os.Open(cleanPath)
	if err != nil {
		return Dataset{}, fmt.Errorf("open launch csv: %w", err)
	}
	defer file.Close()

	dataset, err := ReadCSV(file)
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", cleanPath, err)
	}
	return dataset, nil
}

// ReadCSV parses a launch dataset. Columns are located by header name; extra
// columns are ignored.
func ReadCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, ErrEmptyDataset
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return Dataset{}, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		record, err := parseRow(row, columns)
		if err != nil {
			return Dataset{}, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return Dataset{}, ErrEmptyDataset
	}
	return NewDataset(records)
}

func indexColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for idx, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := positions[name]; !ok {
			positions[name] = idx
		}
	}
	lookup := func(name string) (int, error) {
		idx, ok := positions[name]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		return idx, nil
	}

	var columns columnIndex
	var err error
	if columns.site, err = lookup(ColumnSite); err != nil {
		return columnIndex{}, err
	}
	if columns.class, err = lookup(ColumnClass); err != nil {
		return columnIndex{}, err
	}
	if columns.payload, err = lookup(ColumnPayload); err != nil {
		return columnIndex{}, err
	}
	if columns.booster, err = lookup(ColumnBooster); err != nil {
		return columnIndex{}, err
	}
	return columns, nil
}

func parseRow(row []string, columns columnIndex) (Record, error) {
	field := func(idx int, name string) (string, error) {
		if idx >= len(row) {
			return "", fmt.Errorf("column %q is missing from row", name)
		}
		return strings.TrimSpace(row[idx]), nil
	}

	site, err := field(columns.site, ColumnSite)
	if err != nil {
		return Record{}, err
	}
	rawClass, err := field(columns.class, ColumnClass)
	if err != nil {
		return Record{}, err
	}
	rawPayload, err := field(columns.payload, ColumnPayload)
	if err != nil {
		return Record{}, err
	}
	booster, err := field(columns.booster, ColumnBooster)
	if err != nil {
		return Record{}, err
	}

	class, err := parseOutcome(rawClass)
	if err != nil {
		return Record{}, fmt.Errorf("column %q: %w", ColumnClass, err)
	}
	payload, err := strconv.ParseFloat(rawPayload, 64)
	if err != nil {
		return Record{}, fmt.Errorf("column %q: parse %q: %w", ColumnPayload, rawPayload, err)
	}
	record := Record{
		Site:                   site,
		Class:                  class,
		PayloadMassKG:          payload,
		BoosterVersionCategory: booster,
	}
	if err := record.validate(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// parseOutcome accepts integer and float spellings of 0 and 1.
func parseOutcome(raw string) (Outcome, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, err)
	}
	switch value {
	case 0:
		return Failure, nil
	case 1:
		return Success, nil
	default:
		return 0, fmt.Errorf("class %q must be 0 or 1", raw)
	}
}
