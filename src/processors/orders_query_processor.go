package processors

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/utils"
)

const DefaultPerPage = 50

// Sort keys accepted by OrderQuery.Sort.
const (
	SortByID       = "id"
	SortByCustomer = "customer"
	SortByDate     = "date"
	SortByStatus   = "status"
	SortByTotal    = "total"
	SortBySide     = "side"
	SortBySymbol   = "symbol"
)

// OrderQuery selects a page of orders. Zero values mean "no filter".
// StartDate and EndDate bound Order.Date inclusively by plain string comparison,
// which only orders correctly when every date in the sheet uses the same zero-padded format.
type OrderQuery struct {
	Symbol    string
	Status    string
	StartDate string
	EndDate   string
	Sort      string // one of the SortBy keys, empty keeps sheet order
	Desc      bool
	Page      int
	PerPage   int
}

type orderQueryProcessor struct{}

func NewOrderQueryProcessor() OrderQueryProcessor {
	return &orderQueryProcessor{}
}

func (p *orderQueryProcessor) Query(orders []models.Order, q OrderQuery) models.OrderPage {
	filtered := FilterOrders(orders, q)
	SortOrders(filtered, q.Sort, q.Desc)

	page := utils.MaxInt(q.Page, 1)
	perPage := utils.MaxInt(q.PerPage, 1)

	// Compare page counts before multiplying so huge page numbers cannot overflow.
	pageOrders := []models.Order{}
	pages := len(filtered) / perPage
	if len(filtered)%perPage != 0 {
		pages++
	}
	if page-1 < pages {
		start := (page - 1) * perPage
		end := start + utils.MinInt(perPage, len(filtered)-start)
		pageOrders = filtered[start:end]
	}

	buy, sell := decimal.Zero, decimal.Zero
	for _, o := range filtered {
		if o.Side == models.Buy {
			buy = buy.Add(decimal.NewFromFloat(o.Total))
		} else {
			sell = sell.Add(decimal.NewFromFloat(o.Total))
		}
	}

	return models.OrderPage{
		Orders:      pageOrders,
		Total:       len(filtered),
		Page:        page,
		PerPage:     perPage,
		BuyTotal:    buy.InexactFloat64(),
		SellTotal:   sell.InexactFloat64(),
		Profit:      sell.Sub(buy).InexactFloat64(),
		OrdersCount: len(filtered),
	}
}

// FilterOrders returns a new slice with the orders matching q's symbol, status and date filters.
func FilterOrders(orders []models.Order, q OrderQuery) []models.Order {
	symbol := strings.ToLower(strings.TrimSpace(q.Symbol))
	status := strings.ToLower(strings.TrimSpace(q.Status))
	start := strings.TrimSpace(q.StartDate)
	end := strings.TrimSpace(q.EndDate)

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if symbol != "" && !strings.Contains(strings.ToLower(o.Symbol), symbol) {
			continue
		}
		if status != "" && !strings.Contains(strings.ToLower(o.Status), status) {
			continue
		}
		if start != "" && o.Date < start {
			continue
		}
		if end != "" && o.Date > end {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SortOrders stably sorts orders in place by key. An empty or unknown key leaves them untouched.
func SortOrders(orders []models.Order, key string, desc bool) {
	less := orderLess(strings.ToLower(key))
	if less == nil {
		return
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if desc {
			return less(orders[j], orders[i])
		}
		return less(orders[i], orders[j])
	})
}

func orderLess(key string) func(a, b models.Order) bool {
	switch key {
	case SortByID:
		return func(a, b models.Order) bool { return a.ID < b.ID }
	case SortByCustomer:
		return func(a, b models.Order) bool { return a.Customer < b.Customer }
	case SortByDate:
		return func(a, b models.Order) bool { return a.Date < b.Date }
	case SortByStatus:
		return func(a, b models.Order) bool { return a.Status < b.Status }
	case SortByTotal:
		return func(a, b models.Order) bool { return a.Total < b.Total }
	case SortBySide:
		return func(a, b models.Order) bool { return a.Side < b.Side }
	case SortBySymbol:
		return func(a, b models.Order) bool { return a.Symbol < b.Symbol }
	default:
		return nil
	}
}
