package services

import (
	"context"
	"io"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/processors"
)

// Overview is the /api/data payload: the transaction charts plus the normalized orders list.
type Overview struct {
	models.Dashboard
	OrdersList []models.Order `json:"orders_list"`
}

// DashboardService fetches sheet rows and runs them through the parsers and processors.
type DashboardService interface {
	Overview(ctx context.Context) (*Overview, error)
	RawRows(ctx context.Context) ([]models.Row, error)
	Orders(ctx context.Context, q processors.OrderQuery) (*models.OrderPage, error)
	FilteredOrders(ctx context.Context, q processors.OrderQuery) ([]models.Order, error)
	Ledger(ctx context.Context) (*models.TradeLedger, error)
	Symbols(ctx context.Context) ([]string, error)
	Positions(ctx context.Context) ([]models.Position, error)
	PositionsEnabled() bool
	Invalidate()
}

// UploadResult is the normalized content of an uploaded sheet.
type UploadResult struct {
	Kind      string            `json:"kind"`
	RowCount  int               `json:"row_count"`
	Records   any               `json:"records"`
	Dashboard *models.Dashboard `json:"dashboard,omitempty"` // transactions only
}

// UploadService normalizes uploaded CSV/XLSX/JSON files without storing them.
type UploadService interface {
	ProcessUpload(fileReader io.Reader, filename, kind string) (*UploadResult, error)
}

// QuoteService looks up last market prices.
type QuoteService interface {
	Enabled() bool
	GetQuotes(ctx context.Context, symbols []string) (map[string]float64, error)
}
