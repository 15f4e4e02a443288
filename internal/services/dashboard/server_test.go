package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/dispatch"
	"github.com/louisbranch/launchdash/internal/launch"
	"github.com/louisbranch/launchdash/internal/layout"
	"github.com/louisbranch/launchdash/internal/services/dashboard/platform/htmx"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dataset, err := launch.NewDataset([]launch.Record{
		{Site: "SiteA", Class: launch.Success, PayloadMassKG: 500, BoosterVersionCategory: "v1.0"},
		{Site: "SiteA", Class: launch.Failure, PayloadMassKG: 900, BoosterVersionCategory: "v1.1"},
		{Site: "SiteB", Class: launch.Success, PayloadMassKG: 3000, BoosterVersionCategory: "FT"},
	})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	l, err := layout.Default()
	if err != nil {
		t.Fatalf("layout.Default() error = %v", err)
	}
	return Config{
		HTTPAddr: "127.0.0.1:0",
		Dataset:  dataset,
		Layout:   l,
		Logger:   log.New(&bytes.Buffer{}, "", 0),
	}
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	h, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func chartsRequest(trigger string, query url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/charts?"+query.Encode(), nil)
	req.Header.Set(htmx.RequestHeader, "true")
	if trigger != "" {
		req.Header.Set(htmx.TriggerHeader, trigger)
	}
	return req
}

func TestDashboardPageRendersDefaultState(t *testing.T) {
	t.Parallel()

	rr := serve(testHandler(t), httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{
		"SpaceX Launch Records Dashboard",
		`id="site-dropdown"`,
		`<option value="ALL" selected>All Sites</option>`,
		`id="payload-slider-low"`,
		`value="500"`,
		`value="3000"`,
		`label="10,000 Kg"`,
		`id="success-pie-chart"`,
		`id="success-payload-scatter-chart"`,
		"<svg",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestDashboardPageUsesLocaleForMarks(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	rr := serve(testHandler(t), req)
	if !strings.Contains(rr.Body.String(), `label="10.000 Kg"`) {
		t.Fatalf("expected pt-BR grouped mark label")
	}
	if !strings.Contains(rr.Body.String(), `lang="pt-BR"`) {
		t.Fatalf("expected pt-BR lang attribute")
	}
}

func TestDashboardPageHonorsQueryState(t *testing.T) {
	t.Parallel()

	rr := serve(testHandler(t), httptest.NewRequest(http.MethodGet, "/?site=KSC+LC-39A", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `<option value="KSC LC-39A" selected>`) {
		t.Fatalf("expected KSC LC-39A to be selected")
	}
	if !strings.Contains(body, emptyChartMessage) {
		t.Fatalf("expected empty chart placeholder for a site without launches")
	}
}

func TestChartsSiteTriggerUpdatesBothCharts(t *testing.T) {
	t.Parallel()

	rr := serve(testHandler(t), chartsRequest("site-dropdown", url.Values{"site": {"SiteA"}}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	body := rr.Body.String()
	for _, id := range []string{"success-pie-chart", "success-payload-scatter-chart"} {
		if !strings.Contains(body, `id="`+id+`"`) {
			t.Fatalf("response missing %s", id)
		}
	}
	if strings.Count(body, `hx-swap-oob="true"`) != 2 {
		t.Fatalf("expected two out-of-band fragments")
	}
	if !strings.Contains(body, "Successful Launch Rate for Site SiteA") {
		t.Fatalf("expected site pie title")
	}
}

func TestChartsPayloadTriggerUpdatesScatterOnly(t *testing.T) {
	t.Parallel()

	for _, trigger := range []string{"payload-slider", "payload-slider-low", "payload-slider-high"} {
		rr := serve(testHandler(t), chartsRequest(trigger, url.Values{
			"site":         {"ALL"},
			"payload-low":  {"0"},
			"payload-high": {"1000"},
		}))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want %d", trigger, rr.Code, http.StatusOK)
		}
		body := rr.Body.String()
		if strings.Contains(body, `id="success-pie-chart"`) {
			t.Fatalf("%s: pie must not update on payload change", trigger)
		}
		if !strings.Contains(body, `id="success-payload-scatter-chart"`) {
			t.Fatalf("%s: scatter missing", trigger)
		}
	}
}

func TestChartsTriggerFromQueryParam(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/charts?trigger=payload-slider&payload-low=5000&payload-high=6000", nil)
	rr := serve(testHandler(t), req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), emptyChartMessage) {
		t.Fatalf("expected empty scatter placeholder: %s", rr.Body.String())
	}
}

func TestChartsWithoutTriggerUpdatesEverything(t *testing.T) {
	t.Parallel()

	rr := serve(testHandler(t), chartsRequest("", url.Values{}))
	if strings.Count(rr.Body.String(), `hx-swap-oob="true"`) != 2 {
		t.Fatalf("expected both charts")
	}
}

func TestChartsRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trigger string
		query   url.Values
	}{
		{name: "non-numeric low", trigger: "payload-slider", query: url.Values{"payload-low": {"abc"}}},
		{name: "negative high", trigger: "payload-slider", query: url.Values{"payload-high": {"-1"}}},
		{name: "not finite", trigger: "payload-slider", query: url.Values{"payload-high": {"NaN"}}},
		{name: "unknown control", trigger: "launch-button", query: url.Values{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := serve(testHandler(t), chartsRequest(tc.trigger, tc.query))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAPIChartsReturnsSpecsByOutput(t *testing.T) {
	t.Parallel()

	rr := serve(testHandler(t), httptest.NewRequest(http.MethodGet, "/api/charts?site=SiteA", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var payload map[string]chart.Spec
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	pie, ok := payload[string(dispatch.OutputPie)]
	if !ok {
		t.Fatalf("missing %s in %v", dispatch.OutputPie, payload)
	}
	want := []chart.Slice{{Label: "Success", Value: 1}, {Label: "Failure", Value: 1}}
	if len(pie.Slices) != len(want) {
		t.Fatalf("pie slices = %v, want %v", pie.Slices, want)
	}
	for idx := range want {
		if pie.Slices[idx] != want[idx] {
			t.Fatalf("pie slice %d = %v, want %v", idx, pie.Slices[idx], want[idx])
		}
	}
	scatter := payload[string(dispatch.OutputScatter)]
	if scatter.PointCount() != 2 {
		t.Fatalf("scatter points = %d, want 2", scatter.PointCount())
	}
}

func TestAPIChartsRejectsBadInputAsJSON(t *testing.T) {
	t.Parallel()

	rr := serve(testHandler(t), httptest.NewRequest(http.MethodGet, "/api/charts?payload-low=x", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestHealthAndStatic(t *testing.T) {
	t.Parallel()

	h := testHandler(t)
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
	rr = serve(h, httptest.NewRequest(http.MethodGet, "/static/dashboard.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("static status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestUnknownRoutesAndMethods(t *testing.T) {
	t.Parallel()

	h := testHandler(t)
	if rr := serve(h, httptest.NewRequest(http.MethodGet, "/missing", nil)); rr.Code != http.StatusNotFound {
		t.Fatalf("GET /missing status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if rr := serve(h, httptest.NewRequest(http.MethodPost, "/charts", nil)); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /charts status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestNewHandlerValidatesConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Dataset = launch.Dataset{}
	if _, err := NewHandler(cfg); !errors.Is(err, launch.ErrEmptyDataset) {
		t.Fatalf("NewHandler() error = %v, want %v", err, launch.ErrEmptyDataset)
	}

	cfg = testConfig(t)
	cfg.Layout.Sites = nil
	if _, err := NewHandler(cfg); err == nil {
		t.Fatal("expected invalid layout error")
	}

	cfg = testConfig(t)
	cfg.Bindings = []dispatch.Binding{{Output: "x"}}
	if _, err := NewHandler(cfg); err == nil {
		t.Fatal("expected invalid binding error")
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.HTTPAddr = "  "
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatal("expected missing address error")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(srv.Close)
	if srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("Addr() = %q", srv.Addr())
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}

func TestNilServer(t *testing.T) {
	t.Parallel()

	var srv *Server
	if err := srv.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected nil server error")
	}
	srv.Close()
}

func TestDashboardPageEscapesDatasetText(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	dataset, err := launch.NewDataset([]launch.Record{
		{Site: "Cape <img src=x onerror=alert(1)>", Class: launch.Success, PayloadMassKG: 500, BoosterVersionCategory: "F9 & <b>"},
		{Site: "SiteB", Class: launch.Failure, PayloadMassKG: 3000, BoosterVersionCategory: "FT"},
	})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	cfg.Dataset = dataset
	h, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, raw := range []string{"<img", "& <b>"} {
		if strings.Contains(body, raw) {
			t.Fatalf("page contains unescaped %q", raw)
		}
	}
	if !strings.Contains(body, "&lt;img") {
		t.Fatal("page missing escaped site label")
	}
}
