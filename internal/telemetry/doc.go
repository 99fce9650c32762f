// Package telemetry sets up logging and metrics.
//
// Includes:
//   - logging.go: structured logging through slog
//   - metrics.go: Prometheus metrics for the session and the HTTP API
package telemetry
