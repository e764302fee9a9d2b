package models

// MonthlyCashFlow holds parallel arrays for the monthly cash flow chart, ordered by month.
type MonthlyCashFlow struct {
	Months   []string  `json:"months"` // YYYY-MM
	Incoming []float64 `json:"incoming"`
	Outgoing []float64 `json:"outgoing"`
	NetFlow  []float64 `json:"net_flow"`
}

// YearlyTransferVolume holds parallel arrays for the yearly volume chart, ordered by year.
type YearlyTransferVolume struct {
	Years    []string  `json:"years"` // YYYY
	Incoming []float64 `json:"incoming"`
	Outgoing []float64 `json:"outgoing"`
}

// StatusDistribution counts transactions per normalized status.
type StatusDistribution struct {
	Labels      []string  `json:"labels"`
	Values      []int     `json:"values"`
	Percentages []float64 `json:"percentages"`
}

// TransferByType sums transfer magnitudes per raw type label.
type TransferByType struct {
	Types   []string  `json:"types"`
	Amounts []float64 `json:"amounts"`
}

// SummaryMetrics totals completed transfers.
type SummaryMetrics struct {
	TotalIncomingCompleted float64 `json:"total_incoming_completed"`
	TotalOutgoingCompleted float64 `json:"total_outgoing_completed"`
	NetAccountValue        float64 `json:"net_account_value"`
}

// Dashboard is the full set of transaction charts.
type Dashboard struct {
	MonthlyCashFlow      MonthlyCashFlow      `json:"monthly_cash_flow"`
	YearlyTransferVolume YearlyTransferVolume `json:"yearly_transfer_volume"`
	TransactionStatus    StatusDistribution   `json:"transaction_status"`
	TransferByType       TransferByType       `json:"transfer_by_type"`
	SummaryMetrics       SummaryMetrics       `json:"summary_metrics"`
}

// OrderPage is one page of a filtered order listing with metrics over the whole filtered set.
type OrderPage struct {
	Orders      []Order `json:"orders"`
	Total       int     `json:"total"`
	Page        int     `json:"page"`
	PerPage     int     `json:"per_page"`
	BuyTotal    float64 `json:"buy_total"`
	SellTotal   float64 `json:"sell_total"`
	Profit      float64 `json:"profit"`
	OrdersCount int     `json:"orders_count"`
}

// SymbolVolume is the traded quantity of one symbol.
type SymbolVolume struct {
	Symbol string  `json:"symbol"`
	Volume float64 `json:"volume"`
}

// TradeLedger splits trades into the buy and sell columns of the ledger view.
type TradeLedger struct {
	Buy        []Trade        `json:"buy"`
	Sell       []Trade        `json:"sell"`
	TotalBuy   int            `json:"total_buy"`
	TotalSell  int            `json:"total_sell"`
	TopSymbols []SymbolVolume `json:"top_symbols"`
}
