package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
)

// Sink accepts named tables. The first row of every table is its header.
// Layout and persistence mechanics belong to the sink.
type Sink interface {
	WriteTable(ctx context.Context, title string, rows [][]any) error
}

// Table titles, written in this order.
const (
	TableOverview = "Overview"
	TableBySender = "By Sender"
	TableByDomain = "By Domain"
	TableByLabel  = "By Label"
)

// Renderer converts final aggregates into sorted, formatted tables and
// hands them to a sink. It never mutates the aggregates.
type Renderer struct {
	sink   Sink
	logger *slog.Logger
}

// NewRenderer returns a renderer writing to sink. A nil logger falls back
// to slog.Default.
func NewRenderer(sink Sink, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{sink: sink, logger: logger}
}

// Render writes the four tables in fixed order. The first sink failure is
// fatal and wraps ErrSinkWriteFailed; tables already written stay written.
func (r *Renderer) Render(ctx context.Context, query string, agg *Aggregates) error {
	tables := []struct {
		title string
		rows  [][]any
	}{
		{TableOverview, overviewRows(query, agg)},
		{TableBySender, statsRows("Email", agg.SenderKeys(), agg.bySender)},
		{TableByDomain, statsRows("Domain", agg.DomainKeys(), agg.byDomain)},
		{TableByLabel, labelRows(agg)},
	}

	for _, tbl := range tables {
		if err := r.sink.WriteTable(ctx, tbl.title, tbl.rows); err != nil {
			return fmt.Errorf("%w: table %q: %w", ErrSinkWriteFailed, tbl.title, err)
		}
		r.logger.Debug("table written", "table", tbl.title, "rows", len(tbl.rows))
	}
	return nil
}

func overviewRows(query string, agg *Aggregates) [][]any {
	t := agg.Totals
	return [][]any{
		{"Metric", "Value"},
		{"Query", query},
		{"Threads scanned", t.Threads},
		{"Messages", t.Messages},
		{"Unread threads", t.UnreadThreads},
		{"Unread messages", t.UnreadMessages},
		{"Threads with attachments", t.ThreadsWithAttachments},
		{"Approx size (MB)", Megabytes(t.ApproxSizeBytes)},
	}
}

// statsRows renders a sender or domain rollup, sorted descending by
// message count. The sort is stable over encounter order, so ties keep
// the order keys were first seen during aggregation.
func statsRows(keyHeader string, keys []string, r *rollup[SenderStats]) [][]any {
	sort.SliceStable(keys, func(i, j int) bool {
		a, _ := r.lookup(keys[i])
		b, _ := r.lookup(keys[j])
		return a.Messages > b.Messages
	})

	rows := make([][]any, 0, len(keys)+1)
	rows = append(rows, []any{keyHeader, "Threads", "Messages", "Unread", "With attachments", "Size (MB)"})
	for _, k := range keys {
		s, _ := r.lookup(k)
		rows = append(rows, []any{k, s.Threads, s.Messages, s.Unread, s.WithAttachments, Megabytes(s.ApproxSizeBytes)})
	}
	return rows
}

func labelRows(agg *Aggregates) [][]any {
	keys := agg.LabelKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		a, _ := agg.byLabel.lookup(keys[i])
		b, _ := agg.byLabel.lookup(keys[j])
		return a.Threads > b.Threads
	})

	rows := make([][]any, 0, len(keys)+1)
	rows = append(rows, []any{"Label", "Threads", "Unread threads"})
	for _, k := range keys {
		l, _ := agg.byLabel.lookup(k)
		rows = append(rows, []any{k, l.Threads, l.UnreadThreads})
	}
	return rows
}

// Megabytes formats a byte count as bytes/(1024*1024) with two decimals.
// Rounding is half away from zero (math.Round), so 1 MiB renders as "1.00".
func Megabytes(bytes int64) string {
	mb := float64(bytes) / (1 << 20)
	return strconv.FormatFloat(math.Round(mb*100)/100, 'f', 2, 64)
}
