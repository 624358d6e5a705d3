package sink

import (
	"context"

	"github.com/beholder20/gmail-analysis/internal/instrumentation"
	"github.com/beholder20/gmail-analysis/internal/report"
)

// Instrumented wraps a sink and records a metric per table written.
type Instrumented struct {
	next    report.Sink
	metrics *instrumentation.Metrics
}

// NewInstrumented wraps next with metrics recording. A nil metrics
// recorder is a no-op.
func NewInstrumented(next report.Sink, metrics *instrumentation.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: metrics}
}

func (s *Instrumented) WriteTable(ctx context.Context, title string, rows [][]any) error {
	err := s.next.WriteTable(ctx, title, rows)
	if err == nil {
		s.metrics.RecordTableWritten(ctx, title)
	}
	return err
}
