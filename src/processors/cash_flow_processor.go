package processors

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/utils"
)

type flowBucket struct {
	incoming decimal.Decimal
	outgoing decimal.Decimal
}

type cashFlowProcessor struct{}

func NewCashFlowProcessor() CashFlowProcessor {
	return &cashFlowProcessor{}
}

func (p *cashFlowProcessor) Monthly(transactions []models.Transaction) models.MonthlyCashFlow {
	keys, buckets := bucketTransactions(transactions, utils.MonthKey)
	out := models.MonthlyCashFlow{
		Months:   keys,
		Incoming: make([]float64, 0, len(keys)),
		Outgoing: make([]float64, 0, len(keys)),
		NetFlow:  make([]float64, 0, len(keys)),
	}
	for _, k := range keys {
		b := buckets[k]
		out.Incoming = append(out.Incoming, b.incoming.InexactFloat64())
		out.Outgoing = append(out.Outgoing, b.outgoing.InexactFloat64())
		out.NetFlow = append(out.NetFlow, b.incoming.Sub(b.outgoing).InexactFloat64())
	}
	return out
}

func (p *cashFlowProcessor) Yearly(transactions []models.Transaction) models.YearlyTransferVolume {
	keys, buckets := bucketTransactions(transactions, utils.YearKey)
	out := models.YearlyTransferVolume{
		Years:    keys,
		Incoming: make([]float64, 0, len(keys)),
		Outgoing: make([]float64, 0, len(keys)),
	}
	for _, k := range keys {
		b := buckets[k]
		out.Incoming = append(out.Incoming, b.incoming.InexactFloat64())
		out.Outgoing = append(out.Outgoing, b.outgoing.InexactFloat64())
	}
	return out
}

// bucketTransactions groups dated transactions under keyFn and returns the keys sorted ascending.
// Undated transactions are skipped.
func bucketTransactions(transactions []models.Transaction, keyFn func(time.Time) string) ([]string, map[string]*flowBucket) {
	buckets := make(map[string]*flowBucket)
	for _, tx := range transactions {
		if !tx.HasDate() {
			continue
		}
		key := keyFn(*tx.Date)
		b, ok := buckets[key]
		if !ok {
			b = &flowBucket{}
			buckets[key] = b
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.IsIncoming() {
			b.incoming = b.incoming.Add(amount)
		} else {
			b.outgoing = b.outgoing.Add(amount)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, buckets
}
