package dashboard

import (
	"net/http"

	"github.com/louisbranch/launchdash/internal/services/dashboard/routepath"
)

// registerRoutes mounts the dashboard pages and fragments on mux.
func registerRoutes(mux *http.ServeMux, h *handler) {
	if mux == nil || h == nil {
		return
	}
	mux.HandleFunc("GET "+routepath.Root+"{$}", h.handleDashboard)
	mux.HandleFunc("GET "+routepath.Charts, h.handleCharts)
	mux.HandleFunc("GET "+routepath.APICharts, h.handleAPICharts)
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
}
