package launch

import "strings"

// AllSites is the site selection that disables site filtering.
const AllSites = "ALL"

// IsAllSites reports whether site selects every launch site.
func IsAllSites(site string) bool {
	return strings.TrimSpace(site) == AllSites
}

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64
	High float64
}

// NewPayloadRange builds a range, swapping the bounds when they arrive reversed.
func NewPayloadRange(low, high float64) PayloadRange {
	if low > high {
		low, high = high, low
	}
	return PayloadRange{Low: low, High: high}
}

// Contains reports whether kg lies inside the range, bounds included.
func (r PayloadRange) Contains(kg float64) bool {
	return kg >= r.Low && kg <= r.High
}

// ControlState is the current value of every dashboard filter control.
type ControlState struct {
	Site    string
	Payload PayloadRange
}

// NewControlState normalizes a site selection and payload range. A blank site
// selects all sites.
func NewControlState(site string, payload PayloadRange) ControlState {
	site = strings.TrimSpace(site)
	if site == "" {
		site = AllSites
	}
	return ControlState{
		Site:    site,
		Payload: NewPayloadRange(payload.Low, payload.High),
	}
}

// DefaultControlState selects all sites over the dataset's observed payload range.
func DefaultControlState(d Dataset) ControlState {
	return NewControlState(AllSites, d.PayloadBounds())
}

// IncludesAllSites reports whether the state disables site filtering.
func (s ControlState) IncludesAllSites() bool {
	return IsAllSites(s.Site)
}
