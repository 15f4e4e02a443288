// Package chart defines declarative chart specifications and renders them to
// SVG with go-chart.
package chart

// Kind identifies the chart type a Spec describes.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Slice is one labelled pie wedge.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Point is one scatter observation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is a named group of scatter points drawn in one color.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Tick is a labelled axis position.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Axis describes a continuous axis.
type Axis struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Ticks []Tick  `json:"ticks,omitempty"`
}

// Spec is a declarative chart description. A pie uses Slices; a scatter uses
// Series and both axes.
type Spec struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	Slices []Slice  `json:"slices,omitempty"`
	Series []Series `json:"series,omitempty"`
	XAxis  *Axis    `json:"x_axis,omitempty"`
	YAxis  *Axis    `json:"y_axis,omitempty"`
}

// SliceTotal sums every slice value.
func (s Spec) SliceTotal() float64 {
	var total float64
	for _, slice := range s.Slices {
		total += slice.Value
	}
	return total
}

// PointCount returns the number of scatter points across all series.
func (s Spec) PointCount() int {
	count := 0
	for _, series := range s.Series {
		count += len(series.Points)
	}
	return count
}

// Empty reports whether the spec has nothing to draw.
func (s Spec) Empty() bool {
	switch s.Kind {
	case KindPie:
		for _, slice := range s.Slices {
			if slice.Value > 0 {
				return false
			}
		}
		return true
	case KindScatter:
		return s.PointCount() == 0
	default:
		return true
	}
}
