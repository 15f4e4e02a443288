package healthcheck

import (
	"bytes"
	"context"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	platformgrpc "github.com/louisbranch/launchdash/internal/platform/grpc"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("launch-healthcheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.GRPCAddr != "localhost:8051" || cfg.Service != "dashboard" || cfg.Timeout != 5*time.Second {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("launch-healthcheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-grpc-addr", "10.0.0.1:9000", "-service", "", "-timeout", "250ms"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.GRPCAddr != "10.0.0.1:9000" || cfg.Service != "" || cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestParseConfigRequiresAddr(t *testing.T) {
	fs := flag.NewFlagSet("launch-healthcheck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-grpc-addr", " "}); err == nil {
		t.Fatal("expected missing address error")
	}
}

func TestRunReportsServing(t *testing.T) {
	server, err := platformgrpc.NewHealthServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new health server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()
	server.SetServing("dashboard", true)

	var out bytes.Buffer
	err = Run(context.Background(), Config{GRPCAddr: server.Addr(), Service: "dashboard", Timeout: 2 * time.Second}, &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "dashboard is SERVING") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunFailsWhenNotServing(t *testing.T) {
	server, err := platformgrpc.NewHealthServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new health server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	err = Run(context.Background(), Config{GRPCAddr: server.Addr(), Timeout: 200 * time.Millisecond}, io.Discard)
	if err == nil {
		t.Fatal("expected probe failure")
	}
	if !strings.Contains(err.Error(), "launch-healthcheck") {
		t.Fatalf("error = %v, want command name", err)
	}
}
