// Package summary prints per-site launch outcome tables for the terminal.
package summary

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/datasource"
	"github.com/louisbranch/launchdash/internal/format"
	"github.com/louisbranch/launchdash/internal/launch"
	entrypoint "github.com/louisbranch/launchdash/internal/platform/cmd"
	"github.com/louisbranch/launchdash/internal/platform/i18n"
	"github.com/louisbranch/launchdash/internal/views"
)

// unsetBound marks a payload bound left to the dataset's observed range.
const unsetBound = -1

// Config holds summary command configuration.
type Config struct {
	DataPath    string  `env:"DATA_PATH" envDefault:"spacex_launch_dash.csv"`
	Format      string  `env:"SUMMARY_FORMAT" envDefault:"ascii"`
	Site        string  `env:"SUMMARY_SITE" envDefault:"ALL"`
	PayloadLow  float64 `env:"SUMMARY_PAYLOAD_LOW" envDefault:"-1"`
	PayloadHigh float64 `env:"SUMMARY_PAYLOAD_HIGH" envDefault:"-1"`
	Lang        string  `env:"SUMMARY_LANG"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	if _, err := format.ParseMode(cfg.Format); err != nil {
		return Config{}, err
	}
	if err := validateLang(cfg.Lang); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateLang(lang string) error {
	if strings.TrimSpace(lang) == "" {
		return nil
	}
	if _, ok := i18n.ParseTag(lang); ok {
		return nil
	}
	supported := i18n.SupportedTags()
	names := make([]string, len(supported))
	for idx, tag := range supported {
		names[idx] = tag.String()
	}
	return fmt.Errorf("unsupported lang %q (supported: %s)", lang, strings.Join(names, ", "))
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "launch dataset (.csv, or .db/.sqlite snapshot)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "table format: ascii or markdown")
	fs.StringVar(&cfg.Site, "site", cfg.Site, `launch site, or "ALL"`)
	fs.Float64Var(&cfg.PayloadLow, "payload-low", cfg.PayloadLow, "lowest payload mass in kg (negative: dataset minimum)")
	fs.Float64Var(&cfg.PayloadHigh, "payload-high", cfg.PayloadHigh, "highest payload mass in kg (negative: dataset maximum)")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "locale for number formatting, e.g. en-US or pt-BR")
}

// Run loads the dataset and writes the summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		return errors.New("output writer is required")
	}
	mode, err := format.ParseMode(cfg.Format)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSummary, func(ctx context.Context) error {
		dataset, err := datasource.Load(ctx, cfg.DataPath)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		return Write(out, dataset, controlState(dataset, cfg), mode, cfg.Lang)
	})
}

func controlState(dataset launch.Dataset, cfg Config) launch.ControlState {
	payload := dataset.PayloadBounds()
	if cfg.PayloadLow > unsetBound {
		payload.Low = cfg.PayloadLow
	}
	if cfg.PayloadHigh > unsetBound {
		payload.High = cfg.PayloadHigh
	}
	return launch.NewControlState(cfg.Site, launch.NewPayloadRange(payload.Low, payload.High))
}

// Write renders the outcome table and both chart summaries for state.
func Write(out io.Writer, dataset launch.Dataset, state launch.ControlState, mode format.Mode, lang string) error {
	tag, _ := i18n.ParseTag(lang)
	printer := i18n.Printer(tag)
	filtered := dataset.ForSite(state.Site).InPayloadRange(state.Payload)

	tb := format.NewTable(mode)
	tb.Header("Site", "Launches", "Successes", "Failures", "Success rate")
	tb.Align(format.AlignLeft, format.AlignRight, format.AlignRight, format.AlignRight, format.AlignRight)
	for _, site := range filtered.SiteOutcomes() {
		tb.Row(
			site.Site,
			i18n.Count(printer, site.Total()),
			i18n.Count(printer, site.Successes),
			i18n.Count(printer, site.Failures),
			i18n.Percent(printer, site.SuccessRate()),
		)
	}
	totals := filtered.Outcomes()
	tb.Footer(
		"Total",
		i18n.Count(printer, totals.Total()),
		i18n.Count(printer, totals.Successes),
		i18n.Count(printer, totals.Failures),
		i18n.Percent(printer, totals.SuccessRate()),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "Site: %s, payload %s to %s\n", state.Site, i18n.Mass(printer, int(state.Payload.Low)), i18n.Mass(printer, int(state.Payload.High)))
	b.WriteString(tb.String())
	b.WriteString("\n\n")
	writePie(&b, views.SuccessPie(dataset, state))
	scatter := views.PayloadScatter(dataset, state)
	fmt.Fprintf(&b, "%s: %s points in %d series\n", scatter.Title, i18n.Count(printer, scatter.PointCount()), len(scatter.Series))

	_, err := io.WriteString(out, b.String())
	return err
}

func writePie(b *strings.Builder, spec chart.Spec) {
	b.WriteString(spec.Title + ":\n")
	if spec.Empty() {
		b.WriteString("  (no launches)\n")
		return
	}
	for _, slice := range spec.Slices {
		fmt.Fprintf(b, "  %s: %s\n", slice.Label, formatSliceValue(slice.Value))
	}
}

func formatSliceValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.3f", v)
}
