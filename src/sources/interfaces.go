// Package sources fetches spreadsheet rows from the places they live: Google Sheets,
// CSV or XLSX files and JSON dumps. Every source hands back rows in column order.
package sources

import (
	"context"
	"errors"

	"github.com/username/sheetfolio/src/models"
)

var (
	// ErrNotPublic is returned when a sheet export answers with an HTML login page.
	ErrNotPublic = errors.New("sheet is not publicly accessible")
	// ErrEmptySheet is returned when a sheet has a header but no data rows.
	ErrEmptySheet = errors.New("sheet has no data rows")
	// ErrExportTooLarge is returned when a sheet export exceeds the download limit.
	ErrExportTooLarge = errors.New("sheet export is too large")
)

// Source produces the rows of one worksheet.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Row, error)
}

// SheetRef identifies one worksheet of a spreadsheet.
type SheetRef struct {
	SpreadsheetID string
	WorksheetGID  string // empty means the first worksheet
}

// StaticSource serves a fixed set of rows. Used for uploads and tests.
type StaticSource struct {
	Label string
	Rows  []models.Row
}

func (s *StaticSource) Name() string { return s.Label }

func (s *StaticSource) Fetch(ctx context.Context) ([]models.Row, error) {
	return s.Rows, nil
}
