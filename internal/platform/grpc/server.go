package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer exposes the standard gRPC health service for a single process.
type HealthServer struct {
	listener net.Listener
	server   *gogrpc.Server
	health   *health.Server

	stopOnce sync.Once
}

// NewHealthServer listens on addr and registers the health service.
// The overall status starts as NOT_SERVING.
func NewHealthServer(addr string) (*HealthServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	server := gogrpc.NewServer(gogrpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		listener: listener,
		server:   server,
		health:   healthServer,
	}, nil
}

// Addr returns the listen address.
func (s *HealthServer) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// SetServing reports the named service, or the whole process when service is
// empty, as SERVING or NOT_SERVING.
func (s *HealthServer) SetServing(service string, serving bool) {
	if s == nil {
		return
	}
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, status)
}

// Serve blocks until ctx ends or the listener fails. On cancellation every
// service flips to NOT_SERVING before the server stops.
func (s *HealthServer) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("health server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.Close()
		if err := <-serveErr; err != nil && !errors.Is(err, gogrpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	case err := <-serveErr:
		if err != nil && !errors.Is(err, gogrpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	}
}

// Close marks the process NOT_SERVING and stops the server gracefully.
func (s *HealthServer) Close() {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		s.health.Shutdown()
		s.server.GracefulStop()
		_ = s.listener.Close()
	})
}
