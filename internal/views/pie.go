package views

import (
	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/launch"
)

const (
	allSitesPieTitle = "Rate of Successful Launches By Site"
	sitePieTitle     = "Successful Launch Rate for Site "
)

// SuccessPie aggregates launch outcomes for the selected site.
//
// For all sites it emits one slice per site sized by that site's success rate.
// For a single site it emits Success and Failure slices sized by their counts;
// an absent outcome counts as zero.
func SuccessPie(dataset launch.Dataset, state launch.ControlState) chart.Spec {
	if state.IncludesAllSites() {
		groups := dataset.SiteOutcomes()
		slices := make([]chart.Slice, len(groups))
		for idx, group := range groups {
			slices[idx] = chart.Slice{Label: group.Site, Value: group.SuccessRate()}
		}
		return chart.Spec{Kind: chart.KindPie, Title: allSitesPieTitle, Slices: slices}
	}

	counts := dataset.ForSite(state.Site).Outcomes()
	return chart.Spec{
		Kind:  chart.KindPie,
		Title: sitePieTitle + state.Site,
		Slices: []chart.Slice{
			{Label: launch.Success.String(), Value: float64(counts.Successes)},
			{Label: launch.Failure.String(), Value: float64(counts.Failures)},
		},
	}
}
