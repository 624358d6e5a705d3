package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/beholder20/gmail-analysis/internal/checkpoint"
	"github.com/beholder20/gmail-analysis/internal/config"
	"github.com/beholder20/gmail-analysis/internal/gmail"
	"github.com/beholder20/gmail-analysis/internal/google"
	"github.com/beholder20/gmail-analysis/internal/instrumentation"
	"github.com/beholder20/gmail-analysis/internal/logging"
	"github.com/beholder20/gmail-analysis/internal/report"
	"github.com/beholder20/gmail-analysis/internal/sink"
)

func newReportCmd() *cobra.Command {
	var (
		cfgFile       string
		account       string
		query         string
		pageSize      int
		maxThreads    int
		pacingMs      int
		sinkKind      string
		spreadsheetID string
		continuePast  bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Scan Gmail threads and write usage tables",
		Long: `Scan the Gmail threads matching the configured search query and
aggregate them into four tables: Overview, By Sender, By Domain and
By Label. Tables go to the terminal by default, or to a Google Sheets
spreadsheet with --sink sheets.

With --continue, the query is narrowed to mail older than the oldest
message date recorded by previous runs, so repeated invocations walk
backwards through the mailbox.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for OAuth client credentials.
			_ = godotenv.Load()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("account") {
				cfg.Account = account
			}
			if flags.Changed("query") {
				cfg.Query = query
			}
			if flags.Changed("page-size") {
				cfg.PageSize = pageSize
			}
			if flags.Changed("max-threads") {
				cfg.MaxThreads = maxThreads
			}
			if flags.Changed("pacing-ms") {
				cfg.PacingDelayMs = pacingMs
			}
			if flags.Changed("sink") {
				cfg.Sink = sinkKind
			}
			if flags.Changed("spreadsheet-id") {
				cfg.SpreadsheetID = spreadsheetID
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			logger := logging.WithAccount(slog.Default(), cfg.Account)
			google.SetCredentials(cfg.Google.ClientID, cfg.Google.ClientSecret)

			ctx := context.Background()
			return runReport(ctx, cfg, continuePast, logger)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "Path to the config file (default: ~/.config/gmail-analysis/config.toml)")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")
	cmd.Flags().StringVar(&query, "query", "", "Gmail search query")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Threads fetched per page")
	cmd.Flags().IntVar(&maxThreads, "max-threads", 0, "Maximum threads processed per run")
	cmd.Flags().IntVar(&pacingMs, "pacing-ms", 0, "Fixed delay between page fetches in milliseconds")
	cmd.Flags().StringVar(&sinkKind, "sink", "", "Report sink: console or sheets")
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "Spreadsheet id for the sheets sink")
	cmd.Flags().BoolVar(&continuePast, "continue", false, "Narrow the query to mail older than the last run's checkpoint")
	return cmd
}

func runReport(ctx context.Context, cfg *config.Config, continuePast bool, logger *slog.Logger) error {
	instrCfg := instrumentation.DefaultConfig()
	instrCfg.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()
	metrics := provider.Metrics()

	client, err := gmail.NewClientForAccount(ctx, cfg.Account)
	if err != nil {
		return err
	}
	source, err := gmail.NewThreadSource(ctx, client, logger, metrics)
	if err != nil {
		return err
	}

	cp, err := checkpoint.Load(cfg.CheckpointPath())
	if err != nil {
		return err
	}
	query := cfg.Query
	if continuePast {
		if oldest, ok := cp.Oldest(cfg.Account); ok {
			query = fmt.Sprintf("%s before:%s", query, oldest.Format("2006/01/02"))
			logger.Info("continuing past checkpoint", logging.Query(query))
		}
	}

	reportSink, err := buildSink(ctx, cfg, logger)
	if err != nil {
		return err
	}
	instrumented := sink.NewInstrumented(reportSink, metrics)

	driver := report.NewDriver(source, report.DriverConfig{
		Query:       query,
		PageSize:    cfg.PageSize,
		MaxThreads:  cfg.MaxThreads,
		PacingDelay: cfg.PacingDelay(),
	}, logging.WithOperation(logger, "aggregate"))

	start := time.Now()
	logger.Info("report run starting", logging.Query(query), "sink", cfg.Sink)

	agg, err := driver.Run(ctx)
	if err != nil {
		metrics.RecordRunDuration(ctx, time.Since(start), instrumentation.StatusError)
		return err
	}
	if err := report.NewRenderer(instrumented, logging.WithOperation(logger, "render")).Render(ctx, query, agg); err != nil {
		metrics.RecordRunDuration(ctx, time.Since(start), instrumentation.StatusError)
		return err
	}
	metrics.RecordRunDuration(ctx, time.Since(start), instrumentation.StatusSuccess)

	// Checkpoint failures only widen the next scan; the report succeeded.
	if oldest, ok := source.OldestMessageDate(); ok {
		cp.Observe(cfg.Account, oldest)
		if err := cp.Save(); err != nil {
			logger.Warn("failed to save checkpoint", logging.Err(err))
		}
	}

	logger.Info("report complete",
		"threads", agg.Totals.Threads,
		"messages", agg.Totals.Messages,
		logging.Status(logging.StatusSuccess),
		slog.Duration(logging.KeyDuration, time.Since(start)),
	)
	return nil
}

func buildSink(ctx context.Context, cfg *config.Config, logger *slog.Logger) (report.Sink, error) {
	switch cfg.Sink {
	case config.SinkSheets:
		httpClient, err := google.GetHTTPClientForAccount(ctx, cfg.Account)
		if err != nil {
			return nil, err
		}
		return sink.NewSheets(ctx, httpClient, cfg.SpreadsheetID, logger)
	default:
		return sink.NewConsole(os.Stdout), nil
	}
}
