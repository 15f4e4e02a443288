// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Write caps how long the dashboard spends writing one response, chart
// rendering included.
const Write = 15 * time.Second

// Idle closes keep-alive connections nobody is using.
const Idle = 60 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Telemetry bounds the final span flush when a command exits.
const Telemetry = 5 * time.Second

// HealthProbe bounds how long a health probe waits for SERVING.
const HealthProbe = 5 * time.Second
