package parsers

import (
	"github.com/username/sheetfolio/src/models"
)

// TransactionParser normalizes transfer/ledger rows.
type TransactionParser interface {
	Parse(rows []models.Row) []models.Transaction
}

// OrderParser normalizes rows of the orders view.
type OrderParser interface {
	Parse(rows []models.Row) []models.Order
}

// PositionParser normalizes holdings rows, keeping only open positions.
type PositionParser interface {
	Parse(rows []models.Row) []models.Position
}

// TradeParser normalizes order rows for the buy/sell ledger.
type TradeParser interface {
	Parse(rows []models.Row) []models.Trade
}
