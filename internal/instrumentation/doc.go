// Package instrumentation provides OpenTelemetry metrics for report runs.
//
// The tool is a one-shot CLI, so the only supported exporters are "stdout"
// (periodic reader flushed at shutdown, for development) and "none". The
// provider is disabled entirely with INSTRUMENTATION_ENABLED=false, in
// which case all recording methods are no-ops.
package instrumentation
