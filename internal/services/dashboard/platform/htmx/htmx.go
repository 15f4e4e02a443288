// Package htmx holds the request and response conventions the dashboard
// shares with the htmx browser runtime.
package htmx

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// RequestHeader marks requests issued by htmx.
	RequestHeader = "HX-Request"
	// TriggerHeader carries the id of the element that issued the request.
	TriggerHeader = "HX-Trigger"
	// TriggerParam is the query fallback for TriggerHeader.
	TriggerParam = "trigger"
)

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// TriggerID returns the triggering element id from the htmx header, falling
// back to the trigger query parameter.
func TriggerID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := strings.TrimSpace(r.Header.Get(TriggerHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get(TriggerParam))
}

// Render buffers component and writes it as HTML with status. Nothing is
// written when rendering fails, so callers can still report the error.
func Render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) error {
	if component == nil {
		w.WriteHeader(status)
		return nil
	}
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if IsHTMXRequest(r) {
		w.Header().Add("Vary", RequestHeader)
	}
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
