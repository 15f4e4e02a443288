// Package format renders CLI tables as terminal boxes or Markdown.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode selects the table rendering.
type Mode int

const (
	ASCII Mode = iota
	Markdown
)

// String returns the flag spelling of m.
func (m Mode) String() string {
	switch m {
	case Markdown:
		return "markdown"
	default:
		return "ascii"
	}
}

// ParseMode accepts "ascii" or "markdown" (case-insensitive; "md" too).
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ascii", "text":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return ASCII, fmt.Errorf("unknown table format %q (want ascii or markdown)", value)
	}
}

// Align is a column's horizontal alignment.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignRight
)

// Table accumulates a header, rows and an optional footer.
type Table struct {
	writer table.Writer
	mode   Mode
}

// NewTable returns an empty table rendered in mode m.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &Table{writer: w, mode: m}
}

// Header sets the column titles.
func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

// Row appends a data row.
func (t *Table) Row(vals ...any) {
	t.writer.AppendRow(table.Row(append([]any(nil), vals...)))
}

// Footer appends a totals row.
func (t *Table) Footer(vals ...any) {
	t.writer.AppendFooter(table.Row(append([]any(nil), vals...)))
}

// Align sets per-column alignment; aligns[i] applies to column i+1.
func (t *Table) Align(aligns ...Align) {
	cfgs := make([]table.ColumnConfig, 0, len(aligns))
	for i, a := range aligns {
		align := toTextAlign(a)
		cfgs = append(cfgs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignFooter: align,
		})
	}
	t.writer.SetColumnConfigs(cfgs)
}

// String renders the table.
func (t *Table) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}

// WriteTo renders the table to w followed by a newline.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String()+"\n")
	return int64(n), err
}

func toTextAlign(a Align) text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	default:
		return text.AlignDefault
	}
}
