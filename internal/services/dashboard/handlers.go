package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/dispatch"
	"github.com/louisbranch/launchdash/internal/launch"
	"github.com/louisbranch/launchdash/internal/layout"
	apperrors "github.com/louisbranch/launchdash/internal/platform/errors"
	"github.com/louisbranch/launchdash/internal/platform/i18n"
	"github.com/louisbranch/launchdash/internal/platform/requestctx"
	"github.com/louisbranch/launchdash/internal/services/dashboard/platform/htmx"
	"github.com/louisbranch/launchdash/internal/services/dashboard/platform/httpx"
	"github.com/louisbranch/launchdash/internal/services/dashboard/routepath"
	"github.com/louisbranch/launchdash/internal/services/dashboard/templates"
	"golang.org/x/text/message"
)

// Query parameters carrying control state.
const (
	paramSite        = "site"
	paramPayloadLow  = "payload-low"
	paramPayloadHigh = "payload-high"
)

const emptyChartMessage = "No launches match the current filters."

type handler struct {
	dispatcher *dispatch.Dispatcher
	layout     layout.Layout
	renderer   chart.Renderer
	defaults   launch.ControlState
	logger     *log.Logger
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	state, err := parseControlState(r, h.defaults)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	ctx := httpx.RequestContext(r)
	updates := h.dispatcher.Dispatch(ctx, dispatch.Event{State: state})
	charts, err := h.chartViews(ctx, updates)
	if err != nil {
		h.writeServerError(w, r, err)
		return
	}

	tag := i18n.ResolveTag(r)
	page := h.pageView(state, tag.String(), i18n.Printer(tag))
	page.Charts = charts
	if err := htmx.Render(w, r, http.StatusOK, templates.Page(page)); err != nil {
		h.writeServerError(w, r, err)
	}
}

func (h *handler) handleCharts(w http.ResponseWriter, r *http.Request) {
	state, err := parseControlState(r, h.defaults)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var trigger dispatch.Input
	if id := htmx.TriggerID(r); id != "" {
		input, ok := dispatch.ParseInput(id)
		if !ok {
			httpx.WriteError(w, apperrors.EK(apperrors.KindInvalidInput, "error.unknown_control", fmt.Sprintf("unknown control %q", id)))
			return
		}
		trigger = input
	}

	ctx := httpx.RequestContext(r)
	updates := h.dispatcher.Dispatch(ctx, dispatch.Event{Trigger: trigger, State: state})
	charts, err := h.chartViews(ctx, updates)
	if err != nil {
		h.writeServerError(w, r, err)
		return
	}
	if err := htmx.Render(w, r, http.StatusOK, templates.ChartUpdates(charts)); err != nil {
		h.writeServerError(w, r, err)
	}
}

func (h *handler) handleAPICharts(w http.ResponseWriter, r *http.Request) {
	state, err := parseControlState(r, h.defaults)
	if err != nil {
		_ = httpx.WriteJSONError(w, err)
		return
	}
	updates := h.dispatcher.Dispatch(httpx.RequestContext(r), dispatch.Event{State: state})
	payload := make(map[string]chart.Spec, len(updates))
	for _, update := range updates {
		payload[string(update.Output)] = update.Spec
	}
	if err := httpx.WriteJSON(w, http.StatusOK, payload); err != nil {
		h.logger.Printf("write api charts err=%v", err)
	}
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}

// chartViews renders every update to SVG. Specs with nothing to draw become
// placeholders.
func (h *handler) chartViews(ctx context.Context, updates []dispatch.Update) ([]templates.ChartView, error) {
	views := make([]templates.ChartView, 0, len(updates))
	for _, update := range updates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view := templates.ChartView{
			ID:    string(update.Output),
			Title: update.Spec.Title,
		}
		svg, err := h.renderer.SVG(update.Spec)
		switch {
		case errors.Is(err, chart.ErrNothingToRender):
			view.EmptyMessage = emptyChartMessage
		case err != nil:
			return nil, fmt.Errorf("render %s: %w", update.Output, err)
		default:
			view.SVG = svg
		}
		views = append(views, view)
	}
	return views, nil
}

func (h *handler) pageView(state launch.ControlState, lang string, printer *message.Printer) templates.PageView {
	sites := make([]templates.SiteOption, 0, len(h.layout.Sites))
	for _, site := range h.layout.Sites {
		sites = append(sites, templates.SiteOption{
			Value:    site.Value,
			Label:    h.layout.SiteLabel(site.Value),
			Selected: site.Value == state.Site,
		})
	}
	slider := h.layout.PayloadSlider
	marks := make([]templates.Mark, 0, len(slider.Marks))
	for _, mark := range slider.Marks {
		marks = append(marks, templates.Mark{
			Value: mark,
			Label: i18n.Mass(printer, int(mark)),
		})
	}
	return templates.PageView{
		Lang:            lang,
		Title:           h.layout.Title,
		StylesheetPath:  routepath.Stylesheet,
		ChartsPath:      routepath.Charts,
		SiteDropdownID:  string(dispatch.InputSite),
		SitePlaceholder: h.layout.SitePlaceholder,
		Sites:           sites,
		Slider: templates.SliderView{
			ID:    string(dispatch.InputPayload),
			Label: slider.Label,
			Min:   slider.Min,
			Max:   slider.Max,
			Step:  slider.Step,
			Low:   state.Payload.Low,
			High:  state.Payload.High,
			Marks: marks,
		},
	}
}

func (h *handler) writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Printf("dashboard render failed path=%s request_id=%s err=%v", r.URL.Path, requestctx.RequestIDFromContext(r.Context()), err)
	httpx.WriteError(w, apperrors.Wrap(apperrors.KindUnknown, "failed to render dashboard", err))
}

// parseControlState reads the site and payload range from the query, falling
// back to defaults for anything absent.
func parseControlState(r *http.Request, defaults launch.ControlState) (launch.ControlState, error) {
	query := r.URL.Query()
	site := defaults.Site
	if value := strings.TrimSpace(query.Get(paramSite)); value != "" {
		site = value
	}
	low, err := parseFloatParam(query.Get(paramPayloadLow), defaults.Payload.Low, paramPayloadLow)
	if err != nil {
		return launch.ControlState{}, err
	}
	high, err := parseFloatParam(query.Get(paramPayloadHigh), defaults.Payload.High, paramPayloadHigh)
	if err != nil {
		return launch.ControlState{}, err
	}
	return launch.NewControlState(site, launch.NewPayloadRange(low, high)), nil
}

func parseFloatParam(raw string, fallback float64, name string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindInvalidInput, fmt.Sprintf("%s must be a number", name), err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("%s must be finite", name))
	}
	if value < 0 {
		return 0, apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("%s must not be negative", name))
	}
	return value, nil
}
