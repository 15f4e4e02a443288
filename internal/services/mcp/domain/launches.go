package domain

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/dispatch"
	"github.com/louisbranch/launchdash/internal/launch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilterInput selects a site and an optional payload range.
type FilterInput struct {
	Site        string   `json:"site,omitempty" jsonschema:"launch site name, or ALL for every site"`
	PayloadLow  *float64 `json:"payload_low,omitempty" jsonschema:"lowest payload mass in kg; defaults to the dataset minimum"`
	PayloadHigh *float64 `json:"payload_high,omitempty" jsonschema:"highest payload mass in kg; defaults to the dataset maximum"`
}

// controlState resolves the input against the dataset's defaults.
func (in FilterInput) controlState(dataset launch.Dataset) (launch.ControlState, error) {
	bounds := dataset.PayloadBounds()
	low, err := optionalBound("payload_low", in.PayloadLow, bounds.Low)
	if err != nil {
		return launch.ControlState{}, err
	}
	high, err := optionalBound("payload_high", in.PayloadHigh, bounds.High)
	if err != nil {
		return launch.ControlState{}, err
	}
	return launch.NewControlState(in.Site, launch.NewPayloadRange(low, high)), nil
}

func optionalBound(name string, value *float64, fallback float64) (float64, error) {
	if value == nil {
		return fallback, nil
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", name)
	}
	return v, nil
}

// SitesInput is empty; the tool takes no arguments.
type SitesInput struct{}

// SitesResult lists the dataset's sites and observed payload bounds.
type SitesResult struct {
	Sites      []string `json:"sites" jsonschema:"launch sites in first-appearance order"`
	Records    int      `json:"records" jsonschema:"number of launch records"`
	PayloadMin float64  `json:"payload_min" jsonschema:"smallest observed payload mass in kg"`
	PayloadMax float64  `json:"payload_max" jsonschema:"largest observed payload mass in kg"`
}

// SitesHandler describes the loaded dataset.
func SitesHandler(dataset launch.Dataset) mcp.ToolHandlerFor[SitesInput, SitesResult] {
	return func(context.Context, *mcp.CallToolRequest, SitesInput) (*mcp.CallToolResult, SitesResult, error) {
		bounds := dataset.PayloadBounds()
		return nil, SitesResult{
			Sites:      dataset.Sites(),
			Records:    dataset.Len(),
			PayloadMin: bounds.Low,
			PayloadMax: bounds.High,
		}, nil
	}
}

// ChartsInput filters the dataset and optionally names the control that changed.
type ChartsInput struct {
	FilterInput
	Trigger string `json:"trigger,omitempty" jsonschema:"control id that changed (site-dropdown or payload-slider); empty recomputes every chart"`
}

// ChartUpdate is one recomputed chart.
type ChartUpdate struct {
	Output string     `json:"output" jsonschema:"chart slot id"`
	Spec   chart.Spec `json:"spec" jsonschema:"declarative chart specification"`
}

// ChartsResult lists the recomputed charts in binding order.
type ChartsResult struct {
	Site        string        `json:"site" jsonschema:"resolved site selection"`
	PayloadLow  float64       `json:"payload_low" jsonschema:"resolved lowest payload mass in kg"`
	PayloadHigh float64       `json:"payload_high" jsonschema:"resolved highest payload mass in kg"`
	Updates     []ChartUpdate `json:"updates" jsonschema:"recomputed charts"`
}

// ChartsHandler runs one control event through the dispatcher.
func ChartsHandler(dispatcher *dispatch.Dispatcher) mcp.ToolHandlerFor[ChartsInput, ChartsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ChartsInput) (*mcp.CallToolResult, ChartsResult, error) {
		state, err := input.controlState(dispatcher.Dataset())
		if err != nil {
			return nil, ChartsResult{}, err
		}

		var trigger dispatch.Input
		if strings.TrimSpace(input.Trigger) != "" {
			parsed, ok := dispatch.ParseInput(input.Trigger)
			if !ok {
				return nil, ChartsResult{}, fmt.Errorf("unknown control %q", input.Trigger)
			}
			trigger = parsed
		}

		updates := dispatcher.Dispatch(ctx, dispatch.Event{Trigger: trigger, State: state})
		result := ChartsResult{
			Site:        state.Site,
			PayloadLow:  state.Payload.Low,
			PayloadHigh: state.Payload.High,
			Updates:     make([]ChartUpdate, len(updates)),
		}
		for idx, update := range updates {
			result.Updates[idx] = ChartUpdate{Output: string(update.Output), Spec: update.Spec}
		}
		return nil, result, nil
	}
}

// SiteSummary is the outcome tally for one site.
type SiteSummary struct {
	Site        string  `json:"site" jsonschema:"launch site"`
	Launches    int     `json:"launches" jsonschema:"launches in range"`
	Successes   int     `json:"successes" jsonschema:"successful launches"`
	Failures    int     `json:"failures" jsonschema:"failed launches"`
	SuccessRate float64 `json:"success_rate" jsonschema:"successes over launches, between 0 and 1"`
}

// SummaryResult tallies outcomes per site for the filtered dataset.
type SummaryResult struct {
	Sites []SiteSummary `json:"sites" jsonschema:"per-site tallies in first-appearance order"`
	Total SiteSummary   `json:"total" jsonschema:"tally across every listed site"`
}

// SummaryHandler tallies launch outcomes per site.
func SummaryHandler(dataset launch.Dataset) mcp.ToolHandlerFor[FilterInput, SummaryResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, SummaryResult, error) {
		state, err := input.controlState(dataset)
		if err != nil {
			return nil, SummaryResult{}, err
		}

		filtered := dataset.InPayloadRange(state.Payload)
		if !state.IncludesAllSites() {
			filtered = filtered.ForSite(state.Site)
		}

		groups := filtered.SiteOutcomes()
		result := SummaryResult{Sites: make([]SiteSummary, len(groups))}
		for idx, group := range groups {
			result.Sites[idx] = siteSummary(group.Site, group.OutcomeCounts)
		}
		result.Total = siteSummary(state.Site, filtered.Outcomes())
		return nil, result, nil
	}
}

func siteSummary(site string, counts launch.OutcomeCounts) SiteSummary {
	return SiteSummary{
		Site:        site,
		Launches:    counts.Total(),
		Successes:   counts.Successes,
		Failures:    counts.Failures,
		SuccessRate: counts.SuccessRate(),
	}
}

// SitesTool returns the tool definition for listing sites.
func SitesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "launch_sites",
		Description: "Lists launch sites with the record count and observed payload range",
	}
}

// ChartsTool returns the tool definition for recomputing dashboard charts.
func ChartsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "launch_charts",
		Description: "Recomputes the success pie and payload scatter chart specifications for a site and payload range",
	}
}

// SummaryTool returns the tool definition for per-site outcome tallies.
func SummaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "launch_site_summary",
		Description: "Tallies launch successes and failures per site within a payload range",
	}
}
