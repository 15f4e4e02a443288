package observability

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/launchdash/internal/platform/requestctx"
)

func TestRequestLoggerDashboardRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request func() *http.Request
		handler http.HandlerFunc
		markers []string
	}{
		{
			name: "htmx chart update with context request id",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/charts?site=KSC+LC-39A&payload-low=0&payload-high=5000", nil)
				req.Header.Set("HX-Request", "true")
				req.Header.Set("HX-Trigger", "site-dropdown")
				return req.WithContext(requestctx.WithRequestID(req.Context(), "dash-17"))
			},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<div id="success-pie-chart" hx-swap-oob="true"></div>`))
			},
			markers: []string{"method=GET", "path=/charts ", "status=200", "bytes=53", "request_id=dash-17"},
		},
		{
			name: "rejected payload bound keeps header request id",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/charts?payload-low=heavy", nil)
				req.Header.Set("X-Request-ID", "edge-9")
				return req
			},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "payload-low must be a number", http.StatusBadRequest)
			},
			markers: []string{"path=/charts ", "status=400", "request_id=edge-9"},
		},
		{
			name: "page render without request id",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/", nil)
			},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<!DOCTYPE html>"))
			},
			markers: []string{"path=/ ", "status=200", "bytes=15", "latency=", "request_id=-"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			h := RequestLogger(log.New(&logs, "", 0))(tc.handler)
			h.ServeHTTP(httptest.NewRecorder(), tc.request())

			line := logs.String()
			if !strings.HasPrefix(line, "http request ") {
				t.Fatalf("log line = %q, want http request prefix", line)
			}
			for _, marker := range tc.markers {
				if !strings.Contains(line, marker) {
					t.Fatalf("log line missing %q: %q", marker, line)
				}
			}
		})
	}
}

func TestRequestLoggerFirstStatusWins(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := RequestLogger(log.New(&logs, "", 0))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if !strings.Contains(logs.String(), "status=503") {
		t.Fatalf("log line = %q, want status=503", logs.String())
	}
}

func TestRequestLoggerNilHandlerIsNotFound(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := RequestLogger(log.New(&logs, "", 0))(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(logs.String(), "status=404") {
		t.Fatalf("log line = %q, want status=404", logs.String())
	}
}
