package parsers

import (
	"math"
	"strings"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/resolver"
	"github.com/username/sheetfolio/src/utils"
)

type transactionParser struct{}

func NewTransactionParser() TransactionParser {
	return &transactionParser{}
}

func (p *transactionParser) Kind() string { return KindTransactions }

func (p *transactionParser) Parse(rows []models.Row) []models.Transaction {
	txs := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, NormalizeTransaction(row))
	}
	return txs
}

func (p *transactionParser) ParseRows(rows []models.Row) any {
	return p.Parse(rows)
}

// NormalizeTransaction builds a Transaction from a single transfer row.
func NormalizeTransaction(row models.Row) models.Transaction {
	f := resolver.Transaction
	amount := utils.ParseAmount(resolver.First(row, "", f.AmountNumeric, f.Amount))
	txType := resolver.String(row, f.Type, "")

	direction := models.Outgoing
	if amount > 0 || strings.Contains(strings.ToLower(txType), "incoming") {
		direction = models.Incoming
	}

	tx := models.Transaction{
		Amount:       math.Abs(amount),
		SignedAmount: amount,
		Direction:    direction,
		Type:         txType,
		Status:       resolver.String(row, f.Status, ""),
	}
	if d, ok := resolver.Date(row, f.Date); ok {
		tx.Date = &d
	}
	return tx
}
