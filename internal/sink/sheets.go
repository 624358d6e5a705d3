package sink

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/beholder20/gmail-analysis/internal/logging"
)

// Sheets writes each table to its own sheet (tab) of one spreadsheet,
// creating the sheet if needed and replacing its contents.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewSheets returns a Sheets sink for the given spreadsheet. The HTTP
// client must carry OAuth credentials with spreadsheet scope.
func NewSheets(ctx context.Context, httpClient *http.Client, spreadsheetID string, logger *slog.Logger) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required for the sheets sink")
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID, logger: logger}, nil
}

// WriteTable clears the sheet named title (creating it first if missing)
// and writes rows starting at A1.
func (s *Sheets) WriteTable(ctx context.Context, title string, rows [][]any) error {
	if err := s.ensureSheet(ctx, title); err != nil {
		return err
	}

	clearRange := fmt.Sprintf("'%s'!A:Z", title)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet %q: %w", title, err)
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = append([]interface{}{}, row...)
	}

	vr := &sheets.ValueRange{Values: values}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("'%s'!A1", title), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet %q: %w", title, err)
	}

	s.logger.Debug("sheet updated", logging.Table(title), "rows", len(rows))
	return nil
}

func (s *Sheets) ensureSheet(ctx context.Context, title string) error {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet %s: %w", s.spreadsheetID, err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", title, err)
	}
	return nil
}
