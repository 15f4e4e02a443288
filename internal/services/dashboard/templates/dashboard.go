// Package templates renders the dashboard page and its chart fragments.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTMXScriptURL is the htmx runtime the page loads.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// SiteOption is one entry of the site dropdown.
type SiteOption struct {
	Value    string
	Label    string
	Selected bool
}

// Mark is a labelled slider position.
type Mark struct {
	Value float64
	Label string
}

// SliderView describes the dual-handle payload slider.
type SliderView struct {
	ID    string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Low   float64
	High  float64
	Marks []Mark
}

// ChartView is one chart slot. SVG is written as-is and must come from the
// chart renderer, which escapes every text field; an empty SVG shows
// EmptyMessage instead.
type ChartView struct {
	ID           string
	Title        string
	SVG          []byte
	EmptyMessage string
}

// PageView is everything the full page needs.
type PageView struct {
	Lang            string
	Title           string
	StylesheetPath  string
	ChartsPath      string
	SiteDropdownID  string
	SitePlaceholder string
	Sites           []SiteOption
	Slider          SliderView
	Charts          []ChartView
}

// Page renders the full dashboard document.
func Page(v PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", v.Lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(v.Title)
		h.raw("</title>")
		if v.StylesheetPath != "" {
			h.raw("<link rel=\"stylesheet\"")
			h.attr("href", v.StylesheetPath)
			h.raw(">")
		}
		h.raw("<script")
		h.attr("src", HTMXScriptURL)
		h.raw("></script></head><body><main><h1>")
		h.text(v.Title)
		h.raw("</h1>")
		if h.err != nil {
			return h.err
		}
		if err := controls(v).Render(ctx, w); err != nil {
			return err
		}
		for _, chart := range v.Charts {
			if err := Chart(chart, false).Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw("</main></body></html>")
		return h.err
	})
}

func controls(v PageView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<form id=\"controls\" class=\"controls\" onsubmit=\"return false\"><select")
		h.attr("id", v.SiteDropdownID)
		h.attr("name", "site")
		h.attr("aria-label", v.SitePlaceholder)
		h.attr("title", v.SitePlaceholder)
		hxAttrs(h, v.ChartsPath)
		h.raw(">")
		for _, site := range v.Sites {
			h.raw("<option")
			h.attr("value", site.Value)
			h.flag("selected", site.Selected)
			h.raw(">")
			h.text(site.Label)
			h.raw("</option>")
		}
		h.raw("</select>")

		s := v.Slider
		marksID := s.ID + "-marks"
		h.raw("<div class=\"payload-slider\"")
		h.attr("id", s.ID)
		h.raw("><label")
		h.attr("for", s.ID+"-low")
		h.raw(">")
		h.text(s.Label)
		h.raw("</label>")
		for _, handle := range []struct {
			suffix string
			name   string
			value  float64
		}{
			{suffix: "-low", name: "payload-low", value: s.Low},
			{suffix: "-high", name: "payload-high", value: s.High},
		} {
			h.raw("<input type=\"range\"")
			h.attr("id", s.ID+handle.suffix)
			h.attr("name", handle.name)
			h.attr("min", formatFloat(s.Min))
			h.attr("max", formatFloat(s.Max))
			h.attr("step", formatFloat(s.Step))
			h.attr("value", formatFloat(handle.value))
			h.attr("list", marksID)
			hxAttrs(h, v.ChartsPath)
			h.raw(">")
		}
		h.raw("<datalist")
		h.attr("id", marksID)
		h.raw(">")
		for _, mark := range s.Marks {
			h.raw("<option")
			h.attr("value", formatFloat(mark.Value))
			h.attr("label", mark.Label)
			h.raw("></option>")
		}
		h.raw("</datalist><div class=\"payload-marks\">")
		for _, mark := range s.Marks {
			h.raw("<span>")
			h.text(mark.Label)
			h.raw("</span>")
		}
		h.raw("</div></div></form>")
		return h.err
	})
}

// hxAttrs makes a control re-request charts for the whole form on change.
func hxAttrs(h *htmlWriter, chartsPath string) {
	h.attr("hx-get", chartsPath)
	h.attr("hx-include", "#controls")
	h.attr("hx-trigger", "change")
	h.attr("hx-swap", "none")
}

// Chart renders one chart slot. oob marks it for an htmx out-of-band swap.
func Chart(v ChartView, oob bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div class=\"chart\"")
		h.attr("id", v.ID)
		h.attr("aria-label", v.Title)
		if oob {
			h.attr("hx-swap-oob", "true")
		}
		h.raw(">")
		if len(v.SVG) > 0 {
			h.raw(string(v.SVG))
		} else {
			h.raw("<p class=\"chart-empty\"><strong>")
			h.text(v.Title)
			h.raw("</strong><br>")
			h.text(v.EmptyMessage)
			h.raw("</p>")
		}
		h.raw("</div>")
		return h.err
	})
}

// ChartUpdates renders out-of-band swaps for each updated chart.
func ChartUpdates(views []ChartView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, v := range views {
			if err := Chart(v, true).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
