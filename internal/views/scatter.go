package views

import (
	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/launch"
)

const (
	allSitesScatterTitle = "Correlation Between Payload and Success for All Sites"
	siteScatterTitle     = "Correlation Between Payload and Success for Site "
)

// PayloadScatter plots payload mass against outcome for launches inside the
// selected payload range, one series per booster version category.
func PayloadScatter(dataset launch.Dataset, state launch.ControlState) chart.Spec {
	filtered := dataset.InPayloadRange(state.Payload)
	title := allSitesScatterTitle
	if !state.IncludesAllSites() {
		filtered = filtered.ForSite(state.Site)
		title = siteScatterTitle + state.Site
	}

	index := make(map[string]int)
	series := make([]chart.Series, 0)
	for idx := range filtered.Len() {
		record := filtered.At(idx)
		seriesIdx, ok := index[record.BoosterVersionCategory]
		if !ok {
			seriesIdx = len(series)
			index[record.BoosterVersionCategory] = seriesIdx
			series = append(series, chart.Series{Name: record.BoosterVersionCategory})
		}
		series[seriesIdx].Points = append(series[seriesIdx].Points, chart.Point{
			X: record.PayloadMassKG,
			Y: float64(record.Class),
		})
	}

	return chart.Spec{
		Kind:   chart.KindScatter,
		Title:  title,
		Series: series,
		XAxis: &chart.Axis{
			Label: launch.ColumnPayload,
			Min:   state.Payload.Low,
			Max:   state.Payload.High,
		},
		YAxis: &chart.Axis{
			Label: launch.ColumnClass,
			Min:   -0.2,
			Max:   1.2,
			Ticks: []chart.Tick{
				{Value: float64(launch.Failure), Label: "0"},
				{Value: float64(launch.Success), Label: "1"},
			},
		},
	}
}
