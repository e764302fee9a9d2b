package processors

import (
	"github.com/username/sheetfolio/src/models"
)

type dashboardProcessor struct {
	cashFlow     CashFlowProcessor
	status       StatusProcessor
	transferType TransferTypeProcessor
	summary      SummaryProcessor
}

func NewDashboardProcessor(cashFlow CashFlowProcessor, status StatusProcessor, transferType TransferTypeProcessor, summary SummaryProcessor) DashboardProcessor {
	return &dashboardProcessor{
		cashFlow:     cashFlow,
		status:       status,
		transferType: transferType,
		summary:      summary,
	}
}

// NewDefaultDashboardProcessor wires the package's own processors.
func NewDefaultDashboardProcessor() DashboardProcessor {
	return NewDashboardProcessor(NewCashFlowProcessor(), NewStatusProcessor(), NewTransferTypeProcessor(), NewSummaryProcessor())
}

func (p *dashboardProcessor) Build(transactions []models.Transaction) models.Dashboard {
	return models.Dashboard{
		MonthlyCashFlow:      p.cashFlow.Monthly(transactions),
		YearlyTransferVolume: p.cashFlow.Yearly(transactions),
		TransactionStatus:    p.status.Distribution(transactions),
		TransferByType:       p.transferType.ByType(transactions),
		SummaryMetrics:       p.summary.Summary(transactions),
	}
}
