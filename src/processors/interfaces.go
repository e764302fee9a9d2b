package processors

import (
	"github.com/username/sheetfolio/src/models"
)

// CashFlowProcessor buckets transactions by calendar month and year.
type CashFlowProcessor interface {
	Monthly(transactions []models.Transaction) models.MonthlyCashFlow
	Yearly(transactions []models.Transaction) models.YearlyTransferVolume
}

// StatusProcessor computes the status distribution of transactions.
type StatusProcessor interface {
	Distribution(transactions []models.Transaction) models.StatusDistribution
}

// TransferTypeProcessor sums transfer magnitudes per raw type label.
type TransferTypeProcessor interface {
	ByType(transactions []models.Transaction) models.TransferByType
}

// SummaryProcessor totals completed transfers.
type SummaryProcessor interface {
	Summary(transactions []models.Transaction) models.SummaryMetrics
}

// DashboardProcessor builds every transaction chart in one pass over the processors above.
type DashboardProcessor interface {
	Build(transactions []models.Transaction) models.Dashboard
}

// OrderQueryProcessor filters, sorts and paginates orders.
type OrderQueryProcessor interface {
	Query(orders []models.Order, q OrderQuery) models.OrderPage
}

// LedgerProcessor splits ledger trades into buy and sell columns.
type LedgerProcessor interface {
	Split(trades []models.Trade) models.TradeLedger
}
