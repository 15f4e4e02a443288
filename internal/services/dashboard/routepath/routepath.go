// Package routepath stores canonical HTTP paths for the dashboard.
package routepath

const (
	Root         = "/"
	Charts       = "/charts"
	APICharts    = "/api/charts"
	Health       = "/health"
	StaticPrefix = "/static/"
	Stylesheet   = StaticPrefix + "dashboard.css"
)
