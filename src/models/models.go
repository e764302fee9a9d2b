package models

// Side is the buy/sell classification of an order.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Order represents a normalized row of an orders sheet.
type Order struct {
	ID       string  `json:"id"`       // Order identifier, or ORD-<row> when the sheet has none
	Customer string  `json:"customer"` // Customer/account name, "N/A" when missing
	Date     string  `json:"date"`     // Date text with any time-of-day suffix removed
	Status   string  `json:"status"`   // "N/A" when missing
	Total    float64 `json:"total"`    // Order value, or price * quantity
	Side     Side    `json:"side"`
	Symbol   string  `json:"symbol"`
}

// Position is a currently held instrument. Closed positions are never represented.
type Position struct {
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"cost_basis"`
}

// Trade is an order row as read by the buy/sell ledger view.
// Side keeps the lowercased sheet text ("buy", "sell", "sell short", ...).
type Trade struct {
	ID       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
	Status   string  `json:"status"`
	Date     string  `json:"date"`
	Side     string  `json:"side"`
}
