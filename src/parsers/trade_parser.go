package parsers

import (
	"fmt"
	"strings"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/resolver"
)

type tradeParser struct{}

func NewTradeParser() TradeParser {
	return &tradeParser{}
}

func (p *tradeParser) Kind() string { return KindTrades }

func (p *tradeParser) Parse(rows []models.Row) []models.Trade {
	trades := make([]models.Trade, 0, len(rows))
	for i, row := range rows {
		trades = append(trades, NormalizeTrade(row, i))
	}
	return trades
}

func (p *tradeParser) ParseRows(rows []models.Row) any {
	return p.Parse(rows)
}

// NormalizeTrade builds a ledger Trade. Unlike NormalizeOrder the first matching
// column wins even when its value is blank.
func NormalizeTrade(row models.Row, index int) models.Trade {
	f := resolver.Trade
	quantity := resolver.Amount(row, f.Quantity, 0)
	price := resolver.Amount(row, f.Price, 0)
	total := resolver.Amount(row, f.Total, 0)
	if total == 0 && price > 0 && quantity > 0 {
		total = price * quantity
	}

	return models.Trade{
		ID:       nonBlank(resolver.String(row, f.ID, ""), fmt.Sprintf("ORD-%d", index+1)),
		Symbol:   nonBlank(resolver.String(row, f.Symbol, ""), "N/A"),
		Quantity: quantity,
		Price:    price,
		Total:    total,
		Status:   nonBlank(resolver.String(row, f.Status, ""), "N/A"),
		Date:     resolver.String(row, f.Date, ""),
		Side:     tradeSide(row),
	}
}

// tradeSide is the ledger classification: the lowercased side/action/type text,
// "buy" when absent. A trade is a sell when that text contains "sell".
func tradeSide(row models.Row) string {
	return strings.ToLower(nonBlank(resolver.String(row, resolver.Trade.Side, ""), "buy"))
}

// IsSell reports whether a ledger trade is on the sell side.
func IsSell(t models.Trade) bool {
	return strings.Contains(t.Side, "sell")
}

func nonBlank(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
