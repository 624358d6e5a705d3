package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrTable     = "table"
)

// Status values recorded on metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics provides methods for recording report-run metrics. The zero
// value is a no-op recorder, used when instrumentation is disabled.
type Metrics struct {
	pagesFetchedTotal    metric.Int64Counter
	threadsFetchedTotal  metric.Int64Counter
	tablesWrittenTotal   metric.Int64Counter
	apiOperationDuration metric.Float64Histogram
	runDuration          metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments registered on
// the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.pagesFetchedTotal, err = meter.Int64Counter(
		"report_pages_fetched_total",
		metric.WithDescription("Total number of thread pages fetched from the source"),
		metric.WithUnit("{page}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_pages_fetched_total counter: %w", err)
	}

	m.threadsFetchedTotal, err = meter.Int64Counter(
		"report_threads_fetched_total",
		metric.WithDescription("Total number of threads fetched from the source"),
		metric.WithUnit("{thread}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_threads_fetched_total counter: %w", err)
	}

	m.tablesWrittenTotal, err = meter.Int64Counter(
		"report_tables_written_total",
		metric.WithDescription("Total number of tables written to the report sink"),
		metric.WithUnit("{table}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_tables_written_total counter: %w", err)
	}

	m.apiOperationDuration, err = meter.Float64Histogram(
		"gmail_api_operation_duration_seconds",
		metric.WithDescription("Gmail API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_api_operation_duration_seconds histogram: %w", err)
	}

	m.runDuration, err = meter.Float64Histogram(
		"report_run_duration_seconds",
		metric.WithDescription("End-to-end report run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 5.0, 15.0, 30.0, 60.0, 120.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_run_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordPageFetched records one fetched page and the threads it carried.
// Threads are counted as fetched, not processed: the driver may drop the
// tail of a page once its thread cap is reached.
func (m *Metrics) RecordPageFetched(ctx context.Context, threads int) {
	if m == nil || m.pagesFetchedTotal == nil {
		return
	}
	m.pagesFetchedTotal.Add(ctx, 1)
	m.threadsFetchedTotal.Add(ctx, int64(threads))
}

// RecordTableWritten records one table handed to the report sink.
func (m *Metrics) RecordTableWritten(ctx context.Context, title string) {
	if m == nil || m.tablesWrittenTotal == nil {
		return
	}
	m.tablesWrittenTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrTable, title),
	))
}

// RecordAPIOperation records a Gmail API call's duration and outcome.
func (m *Metrics) RecordAPIOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	if m == nil || m.apiOperationDuration == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.apiOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	))
}

// RecordRunDuration records the duration and outcome of a whole run.
func (m *Metrics) RecordRunDuration(ctx context.Context, duration time.Duration, status string) {
	if m == nil || m.runDuration == nil {
		return
	}
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
}
