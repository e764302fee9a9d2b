package parsers

import (
	"fmt"
	"strings"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/resolver"
)

type orderParser struct{}

func NewOrderParser() OrderParser {
	return &orderParser{}
}

func (p *orderParser) Kind() string { return KindOrders }

func (p *orderParser) Parse(rows []models.Row) []models.Order {
	orders := make([]models.Order, 0, len(rows))
	for i, row := range rows {
		orders = append(orders, NormalizeOrder(row, i))
	}
	return orders
}

func (p *orderParser) ParseRows(rows []models.Row) any {
	return p.Parse(rows)
}

// NormalizeOrder builds an Order from the row at position index (0-based) of its sheet.
func NormalizeOrder(row models.Row, index int) models.Order {
	f := resolver.Order
	status := resolver.String(row, f.Status, "N/A")

	date := resolver.String(row, f.Date, "")
	if i := strings.Index(date, " "); i >= 0 {
		date = date[:i]
	}

	total := resolver.Amount(row, f.Total, 0)
	if total == 0 {
		total = resolver.Amount(row, f.Price, 0) * resolver.Amount(row, f.Quantity, 0)
	}

	return models.Order{
		ID:       resolver.String(row, f.ID, fmt.Sprintf("ORD-%d", index+1)),
		Customer: resolver.String(row, f.Customer, "N/A"),
		Date:     date,
		Status:   status,
		Total:    total,
		Side:     orderSide(row, status),
		Symbol:   orderSymbol(row),
	}
}

// orderSide is the orders-view classification. It treats a status of "buy" as a buy,
// and otherwise only trusts an upper-case BUY in a literal Side column.
// The ledger view classifies differently, see tradeSide.
func orderSide(row models.Row, status string) models.Side {
	if strings.EqualFold(status, "buy") || resolver.Exact(row, "", resolver.OrderSideHeaders...) == "BUY" {
		return models.Buy
	}
	return models.Sell
}

func orderSymbol(row models.Row) string {
	if s := resolver.Exact(row, "", resolver.OrderSymbolHeaders...); s != "" {
		return s
	}
	return "N/A"
}
