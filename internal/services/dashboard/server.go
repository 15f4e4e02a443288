// Package dashboard serves the launch records dashboard over HTTP.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/launchdash/internal/chart"
	"github.com/louisbranch/launchdash/internal/dispatch"
	"github.com/louisbranch/launchdash/internal/launch"
	"github.com/louisbranch/launchdash/internal/layout"
	"github.com/louisbranch/launchdash/internal/platform/timeouts"
	"github.com/louisbranch/launchdash/internal/services/dashboard/platform/httpx"
	"github.com/louisbranch/launchdash/internal/services/dashboard/platform/observability"
	"github.com/louisbranch/launchdash/internal/services/dashboard/routepath"
	dashboardstatic "github.com/louisbranch/launchdash/internal/services/dashboard/static"
)

// Config defines startup inputs for the dashboard.
type Config struct {
	HTTPAddr string
	Dataset  launch.Dataset
	Layout   layout.Layout
	// Bindings overrides dispatch.DefaultBindings when set.
	Bindings []dispatch.Binding
	Renderer chart.Renderer
	Logger   *log.Logger
}

// Server hosts the dashboard HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *log.Logger
}

// NewHandler builds the root handler: routes plus recovery, request id and
// request logging middleware.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Dataset.Len() == 0 {
		return nil, launch.ErrEmptyDataset
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("validate layout: %w", err)
	}
	bindings := cfg.Bindings
	if len(bindings) == 0 {
		bindings = dispatch.DefaultBindings()
	}
	dispatcher, err := dispatch.New(cfg.Dataset, bindings...)
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	h := &handler{
		dispatcher: dispatcher,
		layout:     cfg.Layout,
		renderer:   cfg.Renderer,
		defaults:   launch.DefaultControlState(cfg.Dataset),
		logger:     logger,
	}
	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(dashboardstatic.FS))))
	registerRoutes(mux, h)

	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a dashboard server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose dashboard handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
			ErrorLog:          logger,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("dashboard server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Printf("dashboard listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown dashboard http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve dashboard http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
