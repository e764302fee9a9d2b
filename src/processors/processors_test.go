package processors

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/parsers"
)

func tx(date string, signed float64, txType, status string) models.Transaction {
	t := models.Transaction{
		SignedAmount: signed,
		Type:         txType,
		Status:       status,
		Direction:    models.Outgoing,
	}
	if signed > 0 {
		t.Direction = models.Incoming
	}
	if signed < 0 {
		t.Amount = -signed
	} else {
		t.Amount = signed
	}
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(err)
		}
		t.Date = &d
	}
	return t
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		tx("2024-02-10", 100, "Wire", "Completed"),
		tx("2024-01-15", -50, "Outgoing", "completed "),
		tx("2024-01-20", 25.5, "wire", "PENDING"),
		tx("2023-12-31", -10, "Wire", "Failed"),
		tx("", 999, "Wire", "Completed"),
	}
}

func TestMonthlyCashFlow(t *testing.T) {
	m := NewCashFlowProcessor().Monthly(sampleTransactions())

	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, m.Months)
	assert.Equal(t, []float64{0, 25.5, 100}, m.Incoming)
	assert.Equal(t, []float64{10, 50, 0}, m.Outgoing)
	assert.Equal(t, []float64{-10, -24.5, 100}, m.NetFlow)
}

func TestYearlyTransferVolume(t *testing.T) {
	y := NewCashFlowProcessor().Yearly(sampleTransactions())

	assert.Equal(t, []string{"2023", "2024"}, y.Years)
	assert.Equal(t, []float64{0, 125.5}, y.Incoming)
	assert.Equal(t, []float64{10, 50}, y.Outgoing)
}

func TestReaggregationInvariance(t *testing.T) {
	p := NewCashFlowProcessor()
	txs := sampleTransactions()
	m, y := p.Monthly(txs), p.Yearly(txs)

	sum := func(xs ...[]float64) float64 {
		total := 0.0
		for _, x := range xs {
			for _, v := range x {
				total += v
			}
		}
		return total
	}
	assert.InDelta(t, sum(m.Incoming, m.Outgoing), sum(y.Incoming, y.Outgoing), 1e-9)

	dated := 0.0
	for _, tr := range txs {
		if tr.HasDate() {
			dated += tr.Amount
		}
	}
	assert.InDelta(t, dated, sum(y.Incoming, y.Outgoing), 1e-9)
}

func TestParenthesizedOutgoingBucket(t *testing.T) {
	row := models.NewRow([]string{"Amount", "Type", "Date"}, []string{"($50.00)", "Outgoing", "01/15/2024"})
	txs := parsers.NewTransactionParser().Parse([]models.Row{row})

	m := NewCashFlowProcessor().Monthly(txs)
	assert.Equal(t, []string{"2024-01"}, m.Months)
	assert.Equal(t, []float64{50}, m.Outgoing)
	assert.Equal(t, []float64{0}, m.Incoming)
}

func TestStatusDistribution(t *testing.T) {
	d := NewStatusProcessor().Distribution(append(sampleTransactions(), tx("", 1, "", "  "), tx("", 1, "", "OPEN")))

	assert.Equal(t, []string{"Completed", "Pending", "Failed", "Open"}, d.Labels)
	assert.Equal(t, []int{3, 1, 1, 1}, d.Values)
	require.Len(t, d.Percentages, 4)
	assert.InDelta(t, 50.0, d.Percentages[0], 1e-9)

	total := 0.0
	for _, p := range d.Percentages {
		total += p
	}
	assert.InDelta(t, 100.0, total, 1e-6)
}

func TestStatusDistributionEmpty(t *testing.T) {
	d := NewStatusProcessor().Distribution(nil)
	assert.Empty(t, d.Labels)
	assert.Empty(t, d.Values)
	assert.Empty(t, d.Percentages)
	assert.NotNil(t, d.Labels)

	d = NewStatusProcessor().Distribution([]models.Transaction{tx("", 1, "", "")})
	assert.Empty(t, d.Percentages)
}

func TestTransferByTypeIsCaseSensitive(t *testing.T) {
	b := NewTransferTypeProcessor().ByType(sampleTransactions())

	assert.Equal(t, []string{"Wire", "Outgoing", "wire"}, b.Types)
	assert.Equal(t, []float64{1109, 50, 25.5}, b.Amounts)
}

func TestSummaryMetrics(t *testing.T) {
	s := NewSummaryProcessor().Summary(sampleTransactions())

	assert.Equal(t, 1099.0, s.TotalIncomingCompleted)
	assert.Equal(t, 50.0, s.TotalOutgoingCompleted)
	assert.Equal(t, 1049.0, s.NetAccountValue)
}

func TestSummaryMetricsEmpty(t *testing.T) {
	assert.Equal(t, models.SummaryMetrics{}, NewSummaryProcessor().Summary(nil))
}

func TestDashboardEmptySlices(t *testing.T) {
	d := NewDefaultDashboardProcessor().Build(nil)

	assert.NotNil(t, d.MonthlyCashFlow.Months)
	assert.NotNil(t, d.MonthlyCashFlow.NetFlow)
	assert.NotNil(t, d.YearlyTransferVolume.Years)
	assert.NotNil(t, d.TransferByType.Types)
	assert.NotNil(t, d.TransactionStatus.Percentages)
}

func TestDashboardIgnoresOutOfRangeAmount(t *testing.T) {
	rows := []models.Row{
		models.NewRow([]string{"Amount", "Date", "Status", "Type"}, []string{"1e400", "01/15/2024", "Completed", "Wire"}),
		models.NewRow([]string{"Amount", "Date", "Status", "Type"}, []string{"$25", "01/20/2024", "Completed", "Wire"}),
	}

	var d models.Dashboard
	require.NotPanics(t, func() {
		d = NewDefaultDashboardProcessor().Build(parsers.NewTransactionParser().Parse(rows))
	})
	assert.Equal(t, []string{"2024-01"}, d.MonthlyCashFlow.Months)
	assert.InDelta(t, 25.0, d.SummaryMetrics.NetAccountValue, 1e-9)
}

func makeOrders(n int) []models.Order {
	orders := make([]models.Order, 0, n)
	for i := 0; i < n; i++ {
		side := models.Sell
		if i%2 == 0 {
			side = models.Buy
		}
		orders = append(orders, models.Order{
			ID:     fmt.Sprintf("ORD-%d", i+1),
			Symbol: []string{"AAPL", "MSFT", "DVLT"}[i%3],
			Status: []string{"Filled", "Cancelled"}[i%2],
			Date:   fmt.Sprintf("2024-01-%02d", i%28+1),
			Total:  10,
			Side:   side,
		})
	}
	return orders
}

func TestOrderQueryPagination(t *testing.T) {
	p := NewOrderQueryProcessor()
	orders := makeOrders(120)

	first := p.Query(orders, OrderQuery{Page: 1, PerPage: 50})
	assert.Len(t, first.Orders, 50)
	assert.Equal(t, 120, first.Total)
	assert.Equal(t, "ORD-1", first.Orders[0].ID)

	third := p.Query(orders, OrderQuery{Page: 3, PerPage: 50})
	assert.Len(t, third.Orders, 20)
	assert.Equal(t, "ORD-101", third.Orders[0].ID)

	beyond := p.Query(orders, OrderQuery{Page: 9, PerPage: 50})
	assert.Empty(t, beyond.Orders)
	assert.NotNil(t, beyond.Orders)
	assert.Equal(t, 120, beyond.OrdersCount)
}

func TestOrderQueryHugePageIsEmpty(t *testing.T) {
	p := NewOrderQueryProcessor()

	page := p.Query(makeOrders(10), OrderQuery{Page: math.MaxInt, PerPage: 2})
	assert.Empty(t, page.Orders)
	assert.NotNil(t, page.Orders)
	assert.Equal(t, 10, page.Total)

	all := p.Query(makeOrders(10), OrderQuery{Page: 1, PerPage: math.MaxInt})
	assert.Len(t, all.Orders, 10)

	none := p.Query(makeOrders(10), OrderQuery{Page: 2, PerPage: math.MaxInt})
	assert.Empty(t, none.Orders)
}

func TestOrderQueryClampsPaging(t *testing.T) {
	page := NewOrderQueryProcessor().Query(makeOrders(3), OrderQuery{Page: -2, PerPage: 0})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.PerPage)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "ORD-1", page.Orders[0].ID)
}

func TestOrderQueryFiltersAndMetrics(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Symbol: "AAPL", Status: "Filled", Date: "2024-01-05", Total: 100, Side: models.Buy},
		{ID: "2", Symbol: "aapl", Status: "FILLED", Date: "2024-01-10", Total: 150, Side: models.Sell},
		{ID: "3", Symbol: "MSFT", Status: "Filled", Date: "2024-01-07", Total: 70, Side: models.Sell},
		{ID: "4", Symbol: "AAPL", Status: "Cancelled", Date: "2024-02-01", Total: 30, Side: models.Buy},
	}

	page := NewOrderQueryProcessor().Query(orders, OrderQuery{Symbol: "Aap", Status: "fill", PerPage: 10})
	require.Len(t, page.Orders, 2)
	assert.Equal(t, 100.0, page.BuyTotal)
	assert.Equal(t, 150.0, page.SellTotal)
	assert.Equal(t, 50.0, page.Profit)
	assert.Equal(t, 2, page.OrdersCount)

	page = NewOrderQueryProcessor().Query(orders, OrderQuery{StartDate: "2024-01-07", EndDate: "2024-01-10", PerPage: 10})
	assert.Equal(t, []string{"2", "3"}, ids(page.Orders))

	page = NewOrderQueryProcessor().Query(orders, OrderQuery{EndDate: "2024-01-07", PerPage: 10})
	assert.Equal(t, []string{"1", "3"}, ids(page.Orders))
}

func TestOrderQuerySort(t *testing.T) {
	orders := []models.Order{
		{ID: "a", Total: 5, Symbol: "B"},
		{ID: "b", Total: 1, Symbol: "A"},
		{ID: "c", Total: 5, Symbol: "C"},
	}
	p := NewOrderQueryProcessor()

	assert.Equal(t, []string{"a", "b", "c"}, ids(p.Query(orders, OrderQuery{PerPage: 10}).Orders))
	assert.Equal(t, []string{"b", "a", "c"}, ids(p.Query(orders, OrderQuery{Sort: "total", PerPage: 10}).Orders))
	assert.Equal(t, []string{"a", "c", "b"}, ids(p.Query(orders, OrderQuery{Sort: "total", Desc: true, PerPage: 10}).Orders))
	assert.Equal(t, []string{"c", "a", "b"}, ids(p.Query(orders, OrderQuery{Sort: "Symbol", Desc: true, PerPage: 10}).Orders))
	assert.Equal(t, []string{"a", "b", "c"}, ids(orders), "input is not reordered")
}

func ids(orders []models.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestLedgerSplit(t *testing.T) {
	trades := []models.Trade{
		{ID: "1", Symbol: "AAPL", Side: "buy", Quantity: 10},
		{ID: "2", Symbol: "AAPL", Side: "sell short", Quantity: 5},
		{ID: "3", Symbol: "MSFT", Side: "buy", Quantity: 15},
		{ID: "4", Symbol: "N/A", Side: "sell", Quantity: 100},
	}
	l := NewLedgerProcessor().Split(trades)

	assert.Equal(t, 2, l.TotalBuy)
	assert.Equal(t, 2, l.TotalSell)
	assert.Equal(t, []string{"1", "3"}, []string{l.Buy[0].ID, l.Buy[1].ID})
	assert.Equal(t, []models.SymbolVolume{{Symbol: "AAPL", Volume: 15}, {Symbol: "MSFT", Volume: 15}}, l.TopSymbols)
}

func TestLedgerSplitEmpty(t *testing.T) {
	l := NewLedgerProcessor().Split(nil)
	assert.NotNil(t, l.Buy)
	assert.NotNil(t, l.Sell)
	assert.Empty(t, l.TopSymbols)
}

func TestTopSymbolsLimit(t *testing.T) {
	var trades []models.Trade
	for i, s := range []string{"A", "B", "C", "D", "E", "F"} {
		trades = append(trades, models.Trade{Symbol: s, Quantity: float64(i + 1)})
	}
	top := TopSymbols(trades, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "F", top[0].Symbol)
	assert.Equal(t, "B", top[4].Symbol)
}

func TestUniqueSymbols(t *testing.T) {
	rows := []models.Row{
		models.NewRow([]string{"Symbol"}, []string{"MSFT"}),
		models.NewRow([]string{"Ticker"}, []string{" AAPL "}),
		models.NewRow([]string{"Symbol", "Stock"}, []string{"N/A", "TSLA"}),
		models.NewRow([]string{"Symbol"}, []string{""}),
		models.NewRow([]string{"Symbol"}, []string{"MSFT"}),
	}
	assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, UniqueSymbols(rows))
	assert.Equal(t, []string{}, UniqueSymbols(nil))
}
