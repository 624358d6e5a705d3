package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/beholder20/gmail-analysis/internal/instrumentation"
	"github.com/beholder20/gmail-analysis/internal/report"
)

// ThreadSource implements report.Source on top of the Gmail API.
//
// Gmail paginates with opaque tokens, so the offset/pageSize contract is
// honored with a sequential cursor: FetchPage must be called with offsets
// 0, pageSize, 2*pageSize, ... and each call advances the cursor.
type ThreadSource struct {
	client  *Client
	labels  map[string]string // label id -> user label name
	logger  *slog.Logger
	metrics *instrumentation.Metrics

	nextOffset int
	pageToken  string
	exhausted  bool

	oldest time.Time
}

// NewThreadSource builds a source for one run. It resolves the account's
// user labels up front so thread labels can be reported by name.
func NewThreadSource(ctx context.Context, client *Client, logger *slog.Logger, metrics *instrumentation.Metrics) (*ThreadSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	res, err := client.svc.Labels.List("me").Context(ctx).Do()
	metrics.RecordAPIOperation(ctx, "labels.list", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	labels := make(map[string]string)
	for _, l := range res.Labels {
		if l.Type == "user" {
			labels[l.Id] = l.Name
		}
	}
	logger.Debug("labels resolved", "user_labels", len(labels))

	return &ThreadSource{
		client:  client,
		labels:  labels,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// FetchPage returns the next page of threads for the query. An empty page
// signals exhaustion. Offsets must be requested sequentially; anything
// else indicates a driver bug and is rejected.
func (s *ThreadSource) FetchPage(ctx context.Context, query string, offset, pageSize int) ([]*report.Thread, error) {
	if offset != s.nextOffset {
		return nil, fmt.Errorf("non-sequential offset %d, expected %d", offset, s.nextOffset)
	}
	if s.exhausted {
		return nil, nil
	}

	req := s.client.svc.Threads.List("me").Q(query).MaxResults(int64(pageSize)).Context(ctx)
	if s.pageToken != "" {
		req.PageToken(s.pageToken)
	}

	start := time.Now()
	res, err := req.Do()
	s.metrics.RecordAPIOperation(ctx, "threads.list", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	threads := make([]*report.Thread, 0, len(res.Threads))
	for _, t := range res.Threads {
		full, err := s.fetchThread(ctx, t.Id)
		if err != nil {
			return nil, err
		}
		threads = append(threads, s.convertThread(full))
	}

	s.pageToken = res.NextPageToken
	if s.pageToken == "" {
		s.exhausted = true
	}
	s.nextOffset += pageSize
	s.metrics.RecordPageFetched(ctx, len(threads))
	return threads, nil
}

// fetchThread retrieves one thread in full, including part metadata the
// converter needs for attachment and body sizing.
func (s *ThreadSource) fetchThread(ctx context.Context, id string) (*gmail.Thread, error) {
	start := time.Now()
	full, err := s.client.svc.Threads.Get("me", id).Format("full").Context(ctx).Do()
	s.metrics.RecordAPIOperation(ctx, "threads.get", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread %s: %w", id, err)
	}
	return full, nil
}

// OldestMessageDate returns the oldest message date seen across all pages
// fetched so far, for the checkpoint layered above the engine.
func (s *ThreadSource) OldestMessageDate() (time.Time, bool) {
	return s.oldest, !s.oldest.IsZero()
}

func (s *ThreadSource) observeDate(d time.Time) {
	if d.IsZero() {
		return
	}
	if s.oldest.IsZero() || d.Before(s.oldest) {
		s.oldest = d
	}
}
