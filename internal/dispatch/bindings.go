package dispatch

import (
	"strings"

	"github.com/louisbranch/launchdash/internal/views"
)

// DefaultBindings wires the pie to the site dropdown and the scatter to both
// controls.
func DefaultBindings() []Binding {
	return []Binding{
		{Output: OutputPie, Inputs: []Input{InputSite}, View: views.SuccessPie},
		{Output: OutputScatter, Inputs: []Input{InputSite, InputPayload}, View: views.PayloadScatter},
	}
}

// ParseInput maps a control element id to its Input. The slider handles use
// ids prefixed with the slider id.
func ParseInput(id string) (Input, bool) {
	id = strings.TrimSpace(id)
	switch {
	case id == string(InputSite):
		return InputSite, true
	case id == string(InputPayload), strings.HasPrefix(id, string(InputPayload)+"-"):
		return InputPayload, true
	default:
		return "", false
	}
}
