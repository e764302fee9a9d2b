package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/metrics"
	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/parsers"
	"github.com/username/sheetfolio/src/processors"
	"github.com/username/sheetfolio/src/sources"
)

const (
	datasetTransactions = "transactions"
	datasetOrders       = "orders"
	datasetPositions    = "positions"

	ckRows = "rows_%s"

	DefaultCacheExpiration = 1 * time.Minute
	CacheCleanupInterval   = 5 * time.Minute
)

// DashboardSources are the worksheets the dashboard reads. A nil Positions source
// disables the positions view.
type DashboardSources struct {
	Transactions sources.Source
	Orders       sources.Source
	Positions    sources.Source
}

type dashboardServiceImpl struct {
	sources           DashboardSources
	transactionParser parsers.TransactionParser
	orderParser       parsers.OrderParser
	positionParser    parsers.PositionParser
	tradeParser       parsers.TradeParser
	dashboard         processors.DashboardProcessor
	orderQuery        processors.OrderQueryProcessor
	ledger            processors.LedgerProcessor
	rowCache          *cache.Cache
}

func NewDashboardService(
	src DashboardSources,
	transactionParser parsers.TransactionParser,
	orderParser parsers.OrderParser,
	positionParser parsers.PositionParser,
	tradeParser parsers.TradeParser,
	dashboard processors.DashboardProcessor,
	orderQuery processors.OrderQueryProcessor,
	ledger processors.LedgerProcessor,
	rowCache *cache.Cache,
) DashboardService {
	return &dashboardServiceImpl{
		sources:           src,
		transactionParser: transactionParser,
		orderParser:       orderParser,
		positionParser:    positionParser,
		tradeParser:       tradeParser,
		dashboard:         dashboard,
		orderQuery:        orderQuery,
		ledger:            ledger,
		rowCache:          rowCache,
	}
}

// NewDefaultDashboardService wires the stock parsers and processors.
func NewDefaultDashboardService(src DashboardSources, rowCache *cache.Cache) DashboardService {
	return NewDashboardService(src,
		parsers.NewTransactionParser(),
		parsers.NewOrderParser(),
		parsers.NewPositionParser(),
		parsers.NewTradeParser(),
		processors.NewDefaultDashboardProcessor(),
		processors.NewOrderQueryProcessor(),
		processors.NewLedgerProcessor(),
		rowCache,
	)
}

// Overview fetches the transactions and orders sheets in parallel. Only the transactions
// sheet is required; a failing orders sheet yields an empty orders list.
func (s *dashboardServiceImpl) Overview(ctx context.Context) (*Overview, error) {
	var txRows, orderRows []models.Row

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.rows(gctx, datasetTransactions, s.sources.Transactions)
		txRows = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.rows(gctx, datasetOrders, s.sources.Orders)
		if err != nil {
			logger.FromContext(ctx).Warn("Orders sheet unavailable, returning empty orders list", "error", err)
			return nil
		}
		orderRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	txs := s.transactionParser.Parse(txRows)
	return &Overview{
		Dashboard:  s.dashboard.Build(txs),
		OrdersList: s.orderParser.Parse(orderRows),
	}, nil
}

func (s *dashboardServiceImpl) RawRows(ctx context.Context) ([]models.Row, error) {
	return s.rows(ctx, datasetTransactions, s.sources.Transactions)
}

func (s *dashboardServiceImpl) Orders(ctx context.Context, q processors.OrderQuery) (*models.OrderPage, error) {
	orders, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}
	page := s.orderQuery.Query(orders, q)
	return &page, nil
}

// FilteredOrders applies the query's filters and sort without paginating.
func (s *dashboardServiceImpl) FilteredOrders(ctx context.Context, q processors.OrderQuery) ([]models.Order, error) {
	orders, err := s.orders(ctx)
	if err != nil {
		return nil, err
	}
	filtered := processors.FilterOrders(orders, q)
	processors.SortOrders(filtered, q.Sort, q.Desc)
	return filtered, nil
}

func (s *dashboardServiceImpl) Ledger(ctx context.Context) (*models.TradeLedger, error) {
	rows, err := s.rows(ctx, datasetOrders, s.sources.Orders)
	if err != nil {
		return nil, err
	}
	ledger := s.ledger.Split(s.tradeParser.Parse(rows))
	return &ledger, nil
}

func (s *dashboardServiceImpl) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.rows(ctx, datasetOrders, s.sources.Orders)
	if err != nil {
		return nil, err
	}
	return processors.UniqueSymbols(rows), nil
}

func (s *dashboardServiceImpl) PositionsEnabled() bool {
	return s.sources.Positions != nil
}

// Positions returns an empty list when the positions sheet is disabled or unreachable.
func (s *dashboardServiceImpl) Positions(ctx context.Context) ([]models.Position, error) {
	if !s.PositionsEnabled() {
		return []models.Position{}, nil
	}
	rows, err := s.rows(ctx, datasetPositions, s.sources.Positions)
	if err != nil && !errors.Is(err, ErrNoRows) {
		logger.FromContext(ctx).Warn("Positions sheet unavailable", "error", err)
	}
	return s.positionParser.Parse(rows), nil
}

// Invalidate drops every cached row set, forcing a refetch on the next request.
func (s *dashboardServiceImpl) Invalidate() {
	s.rowCache.Flush()
	if logger.L != nil {
		logger.L.Info("Invalidated row cache")
	}
}

func (s *dashboardServiceImpl) orders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.rows(ctx, datasetOrders, s.sources.Orders)
	if err != nil {
		return nil, err
	}
	return s.orderParser.Parse(rows), nil
}

// rows returns the cached rows of a dataset, fetching them on a miss.
func (s *dashboardServiceImpl) rows(ctx context.Context, dataset string, src sources.Source) ([]models.Row, error) {
	log := logger.FromContext(ctx)
	if src == nil {
		return nil, fmt.Errorf("%w: no %s source configured", ErrNoRows, dataset)
	}

	cacheKey := fmt.Sprintf(ckRows, dataset)
	if cached, found := s.rowCache.Get(cacheKey); found {
		metrics.CacheLookups.WithLabelValues(dataset, "hit").Inc()
		log.Debug("Cache hit for rows", "dataset", dataset)
		return cached.([]models.Row), nil
	}
	metrics.CacheLookups.WithLabelValues(dataset, "miss").Inc()

	start := time.Now()
	rows, err := src.Fetch(ctx)
	metrics.SourceFetchDuration.WithLabelValues(dataset).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SourceFetches.WithLabelValues(dataset, "error").Inc()
		if errors.Is(err, sources.ErrEmptySheet) {
			return nil, fmt.Errorf("%w: %s: %v", ErrNoRows, dataset, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, dataset, err)
	}
	if len(rows) == 0 {
		metrics.SourceFetches.WithLabelValues(dataset, "empty").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNoRows, dataset)
	}

	metrics.SourceFetches.WithLabelValues(dataset, "ok").Inc()
	metrics.SourceRows.WithLabelValues(dataset).Set(float64(len(rows)))
	s.rowCache.Set(cacheKey, rows, cache.DefaultExpiration)
	log.Info("Fetched rows", "dataset", dataset, "source", src.Name(), "rows", len(rows), "duration", time.Since(start))
	return rows, nil
}
