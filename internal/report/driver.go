package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beholder20/gmail-analysis/internal/logging"
)

// Source supplies pages of threads for a query. An empty page signals
// exhaustion. Retry, rate limiting and authentication are the source's
// responsibility, not the driver's.
type Source interface {
	FetchPage(ctx context.Context, query string, offset, pageSize int) ([]*Thread, error)
}

// DriverConfig is the configuration surface consumed by the driver.
type DriverConfig struct {
	Query       string
	PageSize    int           // threads requested per page, > 0
	MaxThreads  int           // processed-thread cap per run, > 0
	PacingDelay time.Duration // fixed sleep between page fetches, >= 0
}

// Driver pulls pages from a Source sequentially and folds every thread
// into a fresh Aggregates value. It owns the aggregates for exactly one
// run; there is no shared state between runs.
type Driver struct {
	src    Source
	cfg    DriverConfig
	logger *slog.Logger
}

// NewDriver returns a driver for one run. A nil logger falls back to
// slog.Default.
func NewDriver(src Source, cfg DriverConfig, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{src: src, cfg: cfg, logger: logger}
}

// Run fetches pages at increasing offsets until the source is exhausted or
// the processed-thread cap is reached, whichever comes first. Threads past
// the cap in a partially consumed page are dropped without a further fetch.
// Fetch failures are not retried: they abort the run wrapped in
// ErrSourceUnavailable, and the partial aggregates are discarded.
//
// Pacing between fetches is a plain blocking sleep. The only other
// cancellation point is the context handed to the source.
func (d *Driver) Run(ctx context.Context) (*Aggregates, error) {
	agg := NewAggregates()
	processed := 0

	for offset := 0; ; offset += d.cfg.PageSize {
		if offset > 0 && d.cfg.PacingDelay > 0 {
			time.Sleep(d.cfg.PacingDelay)
		}

		page, err := d.src.FetchPage(ctx, d.cfg.Query, offset, d.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: page at offset %d: %w", ErrSourceUnavailable, offset, err)
		}
		if len(page) == 0 {
			d.logger.Debug("source exhausted", "offset", offset)
			break
		}

		for _, t := range page {
			if processed >= d.cfg.MaxThreads {
				break
			}
			agg.ApplyThread(t)
			processed++
		}

		d.logger.Debug("page aggregated",
			logging.Operation("fetch_page"),
			"offset", offset,
			"page_threads", len(page),
			"processed", processed,
		)

		if processed >= d.cfg.MaxThreads {
			d.logger.Info("thread cap reached", "max_threads", d.cfg.MaxThreads)
			break
		}
	}

	d.logger.Info("aggregation complete",
		"threads", agg.Totals.Threads,
		"messages", agg.Totals.Messages,
		"senders", agg.bySender.len(),
		"domains", agg.byDomain.len(),
		"labels", agg.byLabel.len(),
	)
	d.logSenders(ctx, agg)
	return agg, nil
}

// logSenders emits one debug line per aggregated sender. Addresses are
// hashed so runs can be correlated across logs without exposing mailbox
// contents; the domain is kept in the clear for coarse filtering.
func (d *Driver) logSenders(ctx context.Context, agg *Aggregates) {
	if !d.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, email := range agg.SenderKeys() {
		s, _ := agg.Sender(email)
		d.logger.Debug("sender aggregated",
			logging.UserHash(email),
			logging.Domain(email),
			"messages", s.Messages,
			"threads", s.Threads,
		)
	}
}
