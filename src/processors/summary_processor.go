package processors

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/sheetfolio/src/models"
)

const completedStatus = "completed"

type summaryProcessor struct{}

func NewSummaryProcessor() SummaryProcessor {
	return &summaryProcessor{}
}

func (p *summaryProcessor) Summary(transactions []models.Transaction) models.SummaryMetrics {
	incoming, outgoing := decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		if strings.ToLower(strings.TrimSpace(tx.Status)) != completedStatus {
			continue
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.IsIncoming() {
			incoming = incoming.Add(amount)
		} else {
			outgoing = outgoing.Add(amount)
		}
	}
	return models.SummaryMetrics{
		TotalIncomingCompleted: incoming.InexactFloat64(),
		TotalOutgoingCompleted: outgoing.InexactFloat64(),
		NetAccountValue:        incoming.Sub(outgoing).InexactFloat64(),
	}
}
