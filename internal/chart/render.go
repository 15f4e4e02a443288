package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToRender reports a spec with no drawable data.
var ErrNothingToRender = errors.New("chart has no data to render")

const (
	defaultWidth  = 640
	defaultHeight = 420
	dotWidth      = 5
)

var palette = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

// SeriesColor returns the hex color (without #) for the series at idx.
func SeriesColor(idx int) string {
	if idx < 0 {
		idx = -idx
	}
	return palette[idx%len(palette)]
}

// Renderer draws specs as SVG documents.
type Renderer struct {
	Width  int
	Height int
}

// SVG renders spec to an SVG document.
func (r Renderer) SVG(spec Spec) ([]byte, error) {
	if spec.Empty() {
		return nil, ErrNothingToRender
	}
	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case KindPie:
		err = r.pie(spec).Render(gochart.SVG, &buf)
	case KindScatter:
		err = r.scatter(spec).Render(gochart.SVG, &buf)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", spec.Kind, err)
	}
	return buf.Bytes(), nil
}

func (r Renderer) size() (int, int) {
	width, height := r.Width, r.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (r Renderer) pie(spec Spec) gochart.PieChart {
	width, height := r.size()
	values := make([]gochart.Value, 0, len(spec.Slices))
	for idx, slice := range spec.Slices {
		// go-chart rejects non-positive wedges.
		if slice.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: svgText(slice.Label),
			Value: slice.Value,
			Style: gochart.Style{
				FillColor:   drawing.ColorFromHex(SeriesColor(idx)),
				StrokeColor: drawing.ColorWhite,
			},
		})
	}
	return gochart.PieChart{
		Title:  svgText(spec.Title),
		Width:  width,
		Height: height,
		Values: values,
	}
}

func (r Renderer) scatter(spec Spec) gochart.Chart {
	width, height := r.size()
	series := make([]gochart.Series, 0, len(spec.Series))
	for idx, group := range spec.Series {
		if len(group.Points) == 0 {
			continue
		}
		xs := make([]float64, len(group.Points))
		ys := make([]float64, len(group.Points))
		for pointIdx, point := range group.Points {
			xs[pointIdx] = point.X
			ys[pointIdx] = point.Y
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    svgText(group.Name),
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    dotWidth,
				DotColor:    drawing.ColorFromHex(SeriesColor(idx)),
			},
		})
	}

	graph := gochart.Chart{
		Title:      svgText(spec.Title),
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis(spec.XAxis),
		YAxis:      yAxis(spec.YAxis),
		Series:     series,
	}
	graph.Elements = []gochart.Renderable{gochart.LegendLeft(&graph)}
	return graph
}

func xAxis(axis *Axis) gochart.XAxis {
	if axis == nil {
		return gochart.XAxis{}
	}
	lo, hi := paddedRange(axis.Min, axis.Max)
	return gochart.XAxis{
		Name:           svgText(axis.Label),
		Range:          &gochart.ContinuousRange{Min: lo, Max: hi},
		Ticks:          ticks(axis.Ticks),
		ValueFormatter: formatNumber,
	}
}

func yAxis(axis *Axis) gochart.YAxis {
	if axis == nil {
		return gochart.YAxis{}
	}
	lo, hi := paddedRange(axis.Min, axis.Max)
	return gochart.YAxis{
		Name:           svgText(axis.Label),
		Range:          &gochart.ContinuousRange{Min: lo, Max: hi},
		Ticks:          ticks(axis.Ticks),
		ValueFormatter: formatNumber,
	}
}

// svgText escapes text for the SVG writer, which emits it verbatim.
func svgText(s string) string {
	return html.EscapeString(s)
}

// paddedRange widens a degenerate range; go-chart refuses a zero delta.
func paddedRange(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	return lo - 0.5, hi + 0.5
}

func ticks(in []Tick) []gochart.Tick {
	if len(in) == 0 {
		return nil
	}
	out := make([]gochart.Tick, len(in))
	for idx, tick := range in {
		out[idx] = gochart.Tick{Value: tick.Value, Label: svgText(tick.Label)}
	}
	return out
}

func formatNumber(v any) string {
	if value, ok := v.(float64); ok {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
