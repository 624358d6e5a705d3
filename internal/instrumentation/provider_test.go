package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	// No-op recorder must be safe to use.
	ctx := context.Background()
	p.Metrics().RecordPageFetched(ctx, 10)
	p.Metrics().RecordTableWritten(ctx, "Overview")
	p.Metrics().RecordAPIOperation(ctx, "threads.list", time.Millisecond, nil)
	p.Metrics().RecordRunDuration(ctx, time.Second, StatusSuccess)

	assert.NoError(t, p.Shutdown(ctx))
}

func TestNewProviderNoneExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsExporter = ExporterNone

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, p.Enabled())
}

func TestNewProviderRejectsUnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsExporter = "otlp"

	_, err := NewProvider(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordPageFetched(ctx, 1)
	m.RecordTableWritten(ctx, "By Sender")
	m.RecordAPIOperation(ctx, "threads.get", time.Millisecond, assert.AnError)
	m.RecordRunDuration(ctx, time.Second, StatusError)
}
