// Package google exports aggregation reports to a Google Sheets
// spreadsheet. This is a collaborator surface: appends are retried with
// exponential backoff here, outside the core pipeline's single-shot rules.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"spendledger/internal/core"
	ports "spendledger/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	reportSheet   string
}

// Ensure interface conformance
var _ ports.ReportWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_REPORT_SHEET_NAME (default "Reports"),
// GOOGLE_SERVICE_ACCOUNT_JSON / GOOGLE_SERVICE_ACCOUNT_FILE /
// GOOGLE_APPLICATION_CREDENTIALS for auth.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	reportSheet := strings.TrimSpace(os.Getenv("GOOGLE_REPORT_SHEET_NAME"))
	if reportSheet == "" {
		reportSheet = "Reports"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		reportSheet:   reportSheet,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	if saJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); saJSON != "" {
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON([]byte(saJSON)),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	}
	saFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if saFile == "" {
		saFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if saFile != "" {
		return gsheet.NewService(ctx,
			goption.WithCredentialsFile(saFile),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	}
	// Application default credentials as a last resort
	return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
}

// AppendReport writes one row per category total and one per violation to
// the report sheet, all tagged with the run ID.
func (c *Client) AppendReport(ctx context.Context, runID string, report *core.AggregationReport) error {
	now := time.Now().Format(time.RFC3339)

	var values [][]interface{}
	for _, tc := range report.TopCategories {
		values = append(values, []interface{}{now, runID, "category_total", "", tc.Category, tc.Amount})
	}
	for month, total := range report.TotalByMonth {
		values = append(values, []interface{}{now, runID, "month_total", month, "", total})
	}
	for _, v := range report.Violations {
		values = append(values, []interface{}{now, runID, "violation", v.Month, v.Category,
			fmt.Sprintf("spent %.2f limit %.2f excess %.2f", v.Spent, v.Limit, v.Excess)})
	}
	if len(values) == 0 {
		values = append(values, []interface{}{now, runID, "empty_report", "", "", report.CountIndexedTxns})
	}

	rangeRef := fmt.Sprintf("%s!A:F", c.reportSheet)
	vr := &gsheet.ValueRange{Values: values}

	appendCall := func() error {
		_, err := c.svc.Spreadsheets.Values.
			Append(c.spreadsheetID, rangeRef, vr).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(appendCall, policy); err != nil {
		return fmt.Errorf("append report rows: %w", err)
	}
	return nil
}
