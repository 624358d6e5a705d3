package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures tables in write order, optionally failing on one title.
type recordingSink struct {
	titles []string
	tables map[string][][]any
	failOn string
}

func (s *recordingSink) WriteTable(_ context.Context, title string, rows [][]any) error {
	if title == s.failOn {
		return errors.New("disk full")
	}
	s.titles = append(s.titles, title)
	if s.tables == nil {
		s.tables = make(map[string][][]any)
	}
	s.tables[title] = rows
	return nil
}

func TestRendererWritesTablesInOrder(t *testing.T) {
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Labels: []string{"Promo"}, Messages: []Message{
		msg("a@x.com", true, "hi"),
	}})

	sink := &recordingSink{}
	r := NewRenderer(sink, nil)
	require.NoError(t, r.Render(context.Background(), "in:inbox", agg))

	assert.Equal(t, []string{TableOverview, TableBySender, TableByDomain, TableByLabel}, sink.titles)

	overview := sink.tables[TableOverview]
	require.NotEmpty(t, overview)
	assert.Equal(t, []any{"Metric", "Value"}, overview[0])
	assert.Contains(t, overview, []any{"Query", "in:inbox"})
	assert.Contains(t, overview, []any{"Threads scanned", int64(1)})
}

func TestRendererSortsByMessagesDescending(t *testing.T) {
	agg := NewAggregates()
	// b@y.com ends up with 2 messages, a@x.com with 1.
	agg.ApplyThread(&Thread{Messages: []Message{
		msg("a@x.com", false, "x"),
		msg("b@y.com", false, "x"),
		msg("b@y.com", false, "x"),
	}})

	sink := &recordingSink{}
	require.NoError(t, NewRenderer(sink, nil).Render(context.Background(), "q", agg))

	rows := sink.tables[TableBySender]
	require.Len(t, rows, 3)
	assert.Equal(t, "b@y.com", rows[1][0])
	assert.Equal(t, "a@x.com", rows[2][0])
}

func TestRendererSortStabilityOnTies(t *testing.T) {
	agg := NewAggregates()
	// Three senders, one message each: ties keep first-seen order.
	agg.ApplyThread(&Thread{Messages: []Message{
		msg("c@z.com", false, "x"),
		msg("a@x.com", false, "x"),
		msg("b@y.com", false, "x"),
	}})

	sink := &recordingSink{}
	require.NoError(t, NewRenderer(sink, nil).Render(context.Background(), "q", agg))

	rows := sink.tables[TableBySender]
	require.Len(t, rows, 4)
	assert.Equal(t, "c@z.com", rows[1][0])
	assert.Equal(t, "a@x.com", rows[2][0])
	assert.Equal(t, "b@y.com", rows[3][0])
}

func TestRendererSinkFailureIsFatal(t *testing.T) {
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Messages: []Message{msg("a@x.com", false, "x")}})

	sink := &recordingSink{failOn: TableByDomain}
	err := NewRenderer(sink, nil).Render(context.Background(), "q", agg)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSinkWriteFailed)
	// Earlier tables stay written, later ones are never attempted.
	assert.Equal(t, []string{TableOverview, TableBySender}, sink.titles)
}

func TestRendererLabelTable(t *testing.T) {
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Labels: []string{"Promo"}, Messages: []Message{msg("a@x.com", true, "x")}})
	agg.ApplyThread(&Thread{Labels: []string{"Work", "Promo"}, Messages: []Message{msg("a@x.com", false, "x")}})

	sink := &recordingSink{}
	require.NoError(t, NewRenderer(sink, nil).Render(context.Background(), "q", agg))

	rows := sink.tables[TableByLabel]
	require.Len(t, rows, 3)
	assert.Equal(t, []any{"Label", "Threads", "Unread threads"}, rows[0])
	assert.Equal(t, []any{"Promo", int64(2), int64(1)}, rows[1])
	assert.Equal(t, []any{"Work", int64(1), int64(0)}, rows[2])
}

func TestMegabytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00"},
		{1 << 20, "1.00"},          // exactly 1 MiB
		{220, "0.00"},              // far below a hundredth
		{5*(1<<20) + 1<<19, "5.50"}, // 5.5 MiB
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Megabytes(tt.bytes), "bytes=%d", tt.bytes)
	}
}
