package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/sheetfolio/src/models"
)

type transferTypeProcessor struct{}

func NewTransferTypeProcessor() TransferTypeProcessor {
	return &transferTypeProcessor{}
}

// ByType groups on the raw type text, so "Wire" and "wire" are separate buckets.
func (p *transferTypeProcessor) ByType(transactions []models.Transaction) models.TransferByType {
	var types []string
	sums := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type == "" {
			continue
		}
		sum, ok := sums[tx.Type]
		if !ok {
			types = append(types, tx.Type)
		}
		sums[tx.Type] = sum.Add(decimal.NewFromFloat(tx.Amount))
	}

	out := models.TransferByType{
		Types:   make([]string, 0, len(types)),
		Amounts: make([]float64, 0, len(types)),
	}
	for _, t := range types {
		out.Types = append(out.Types, t)
		out.Amounts = append(out.Amounts, sums[t].InexactFloat64())
	}
	return out
}
