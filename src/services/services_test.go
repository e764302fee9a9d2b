package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/processors"
	"github.com/username/sheetfolio/src/sources"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

type countingSource struct {
	rows  []models.Row
	err   error
	calls int32
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Fetch(ctx context.Context) ([]models.Row, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.rows, c.err
}

func transactionRows() []models.Row {
	h := []string{"Amount", "Type", "Date", "Status"}
	return []models.Row{
		models.NewRow(h, []string{"$100.00", "Incoming", "01/05/2024", "Completed"}),
		models.NewRow(h, []string{"($40.00)", "Outgoing", "01/20/2024", "completed"}),
		models.NewRow(h, []string{"10", "Incoming", "02/01/2024", "Pending"}),
	}
}

func orderRows() []models.Row {
	h := []string{"Order ID", "Symbol", "Side", "Status", "Total Value", "Placed Time"}
	return []models.Row{
		models.NewRow(h, []string{"A1", "DVLT", "BUY", "Filled", "100", "2024-01-02 10:00"}),
		models.NewRow(h, []string{"A2", "AAPL", "SELL", "Filled", "250", "2024-01-03 11:00"}),
		models.NewRow(h, []string{"A3", "DVLT", "SELL", "Cancelled", "75", "2024-01-04 12:00"}),
	}
}

func newService(src DashboardSources) DashboardService {
	return NewDefaultDashboardService(src, cache.New(time.Minute, time.Minute))
}

func TestOverview(t *testing.T) {
	svc := newService(DashboardSources{
		Transactions: &sources.StaticSource{Label: "tx", Rows: transactionRows()},
		Orders:       &sources.StaticSource{Label: "orders", Rows: orderRows()},
	})

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01", "2024-02"}, ov.MonthlyCashFlow.Months)
	assert.Equal(t, 100.0, ov.SummaryMetrics.TotalIncomingCompleted)
	assert.Equal(t, 40.0, ov.SummaryMetrics.TotalOutgoingCompleted)
	assert.Len(t, ov.OrdersList, 3)
	assert.Equal(t, models.Buy, ov.OrdersList[0].Side)
}

func TestOverviewToleratesMissingOrders(t *testing.T) {
	svc := newService(DashboardSources{
		Transactions: &sources.StaticSource{Label: "tx", Rows: transactionRows()},
		Orders:       &countingSource{err: errors.New("down")},
	})

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ov.OrdersList)
	assert.Empty(t, ov.OrdersList)
}

func TestOverviewNoRows(t *testing.T) {
	svc := newService(DashboardSources{Transactions: &sources.StaticSource{Label: "tx"}})
	_, err := svc.Overview(context.Background())
	assert.ErrorIs(t, err, ErrNoRows)

	svc = newService(DashboardSources{Transactions: &countingSource{err: sources.ErrNotPublic}})
	_, err = svc.Overview(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)

	svc = newService(DashboardSources{Transactions: &countingSource{err: sources.ErrEmptySheet}})
	_, err = svc.Overview(context.Background())
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestRowsAreCached(t *testing.T) {
	src := &countingSource{rows: transactionRows()}
	svc := newService(DashboardSources{Transactions: src})

	for i := 0; i < 3; i++ {
		_, err := svc.RawRows(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))

	svc.Invalidate()
	_, err := svc.RawRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestOrdersQuery(t *testing.T) {
	svc := newService(DashboardSources{Orders: &sources.StaticSource{Label: "orders", Rows: orderRows()}})

	page, err := svc.Orders(context.Background(), processors.OrderQuery{Symbol: "dvlt", Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "A1", page.Orders[0].ID)
	assert.Equal(t, 100.0, page.BuyTotal)
	assert.Equal(t, 75.0, page.SellTotal)
	assert.Equal(t, -25.0, page.Profit)

	all, err := svc.FilteredOrders(context.Background(), processors.OrderQuery{Sort: "total", Desc: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A2", all[0].ID)
}

func TestLedgerAndSymbols(t *testing.T) {
	svc := newService(DashboardSources{Orders: &sources.StaticSource{Label: "orders", Rows: orderRows()}})

	ledger, err := svc.Ledger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.TotalBuy)
	assert.Equal(t, 2, ledger.TotalSell)

	symbols, err := svc.Symbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "DVLT"}, symbols)
}

func TestPositions(t *testing.T) {
	svc := newService(DashboardSources{})
	assert.False(t, svc.PositionsEnabled())
	positions, err := svc.Positions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Position{}, positions)

	h := []string{"Symbol", "Quantity", "Cost Basis", "Status"}
	svc = newService(DashboardSources{Positions: &sources.StaticSource{Label: "pos", Rows: []models.Row{
		models.NewRow(h, []string{"AAPL", "10", "1500", "Open"}),
		models.NewRow(h, []string{"TSLA", "5", "900", "Closed"}),
	}}})
	positions, err = svc.Positions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Position{{Symbol: "AAPL", Quantity: 10, CostBasis: 1500}}, positions)

	svc = newService(DashboardSources{Positions: &countingSource{err: errors.New("down")}})
	positions, err = svc.Positions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestMissingSource(t *testing.T) {
	_, err := newService(DashboardSources{}).Ledger(context.Background())
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestProcessUpload(t *testing.T) {
	svc := NewUploadService(processors.NewDefaultDashboardProcessor())

	res, err := svc.ProcessUpload(strings.NewReader("Amount,Type,Date,Status\n$5,Incoming,01/02/2024,Completed\n"), "t.csv", "transactions")
	require.NoError(t, err)
	assert.Equal(t, "transactions", res.Kind)
	assert.Equal(t, 1, res.RowCount)
	require.NotNil(t, res.Dashboard)
	assert.Equal(t, 5.0, res.Dashboard.SummaryMetrics.TotalIncomingCompleted)

	res, err = svc.ProcessUpload(strings.NewReader(`[{"Symbol":"AAPL","Qty":"3"}]`), "p.JSON", "positions")
	require.NoError(t, err)
	assert.Nil(t, res.Dashboard)
	assert.Equal(t, []models.Position{{Symbol: "AAPL", Quantity: 3}}, res.Records)

	_, err = svc.ProcessUpload(strings.NewReader("x"), "t.csv", "dividends")
	assert.ErrorIs(t, err, ErrParsingFailed)

	_, err = svc.ProcessUpload(strings.NewReader("x"), "t.pdf", "orders")
	assert.ErrorIs(t, err, ErrParsingFailed)
}

func TestQuoteService(t *testing.T) {
	var gotSymbols, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":190.5},{"symbol":"NOPE"}],"error":null}}`)
	}))
	defer srv.Close()

	svc := NewQuoteService(true, srv.URL, time.Second)
	quotes, err := svc.GetQuotes(context.Background(), []string{" AAPL", "", "NOPE "})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 190.5}, quotes)
	assert.Equal(t, "AAPL,NOPE", gotSymbols)
	assert.NotEmpty(t, gotUA)
}

func TestQuoteServiceErrors(t *testing.T) {
	_, err := NewQuoteService(false, "", 0).GetQuotes(context.Background(), []string{"AAPL"})
	assert.ErrorIs(t, err, ErrQuotesDisabled)

	_, err = NewQuoteService(true, "", 0).GetQuotes(context.Background(), []string{" ", ""})
	assert.ErrorIs(t, err, ErrNoSymbols)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	quotes, err := NewQuoteService(true, srv.URL, time.Second).GetQuotes(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	assert.Empty(t, quotes)
}
