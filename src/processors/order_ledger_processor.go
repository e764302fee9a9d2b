package processors

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/parsers"
)

const topSymbolCount = 5

type ledgerProcessor struct{}

func NewLedgerProcessor() LedgerProcessor {
	return &ledgerProcessor{}
}

func (p *ledgerProcessor) Split(trades []models.Trade) models.TradeLedger {
	ledger := models.TradeLedger{
		Buy:  []models.Trade{},
		Sell: []models.Trade{},
	}
	for _, t := range trades {
		if parsers.IsSell(t) {
			ledger.Sell = append(ledger.Sell, t)
		} else {
			ledger.Buy = append(ledger.Buy, t)
		}
	}
	ledger.TotalBuy = len(ledger.Buy)
	ledger.TotalSell = len(ledger.Sell)
	ledger.TopSymbols = TopSymbols(trades, topSymbolCount)
	return ledger
}

// TopSymbols ranks symbols by total traded quantity, largest first, ties broken by symbol.
// Trades without a symbol are ignored.
func TopSymbols(trades []models.Trade, n int) []models.SymbolVolume {
	volumes := make(map[string]decimal.Decimal)
	for _, t := range trades {
		if t.Symbol == "" || t.Symbol == "N/A" {
			continue
		}
		volumes[t.Symbol] = volumes[t.Symbol].Add(decimal.NewFromFloat(t.Quantity))
	}

	ranked := make([]models.SymbolVolume, 0, len(volumes))
	for sym, v := range volumes {
		ranked = append(ranked, models.SymbolVolume{Symbol: sym, Volume: v.InexactFloat64()})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Volume != ranked[j].Volume {
			return ranked[i].Volume > ranked[j].Volume
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
