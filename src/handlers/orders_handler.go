package handlers

import (
	"encoding/csv"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/processors"
	"github.com/username/sheetfolio/src/security/validation"
	"github.com/username/sheetfolio/src/services"
	"github.com/username/sheetfolio/src/utils"
)

const msgOrdersUnavailable = "Unable to fetch data from Google Sheets"

// MaxPerPage caps the per_page query parameter.
const MaxPerPage = 1000

var exportHeader = []string{"id", "date", "customer", "symbol", "side", "status", "total"}

type OrdersHandler struct {
	dashboard       services.DashboardService
	defaultPageSize int
}

func NewOrdersHandler(dashboard services.DashboardService, defaultPageSize int) *OrdersHandler {
	if defaultPageSize < 1 {
		defaultPageSize = processors.DefaultPerPage
	}
	return &OrdersHandler{dashboard: dashboard, defaultPageSize: defaultPageSize}
}

// HandleGetOrders serves one page of filtered, sorted orders.
func (h *OrdersHandler) HandleGetOrders(w http.ResponseWriter, r *http.Request) {
	q := h.parseOrderQuery(r.URL.Query())
	page, err := h.dashboard.Orders(r.Context(), q)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error querying orders", "error", err)
		utils.SendJSONError(w, msgOrdersUnavailable, http.StatusInternalServerError)
		return
	}
	sendJSONWithETag(w, r, page, "orders")
}

// HandleGetLedger serves orders split into buy and sell columns.
func (h *OrdersHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.dashboard.Ledger(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Error building order ledger", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"buy":   []models.Trade{},
			"sell":  []models.Trade{},
			"error": msgOrdersUnavailable,
		})
		return
	}
	sendJSONWithETag(w, r, ledger, "ledger")
}

func (h *OrdersHandler) HandleGetSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.dashboard.Symbols(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Error listing order symbols", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{"symbols": []string{}})
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	render.JSON(w, r, map[string]any{"symbols": symbols})
}

// HandleExportOrders streams the filtered, sorted orders as CSV. Text cells are
// sanitized so spreadsheets opening the file do not evaluate them as formulas.
func (h *OrdersHandler) HandleExportOrders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := h.parseOrderQuery(r.URL.Query())
	orders, err := h.dashboard.FilteredOrders(r.Context(), q)
	if err != nil {
		log.Error("Error exporting orders", "error", err)
		utils.SendJSONError(w, msgOrdersUnavailable, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		log.Error("Error writing CSV header", "error", err)
		return
	}
	for _, o := range orders {
		record := []string{
			validation.SanitizeCell(o.ID),
			validation.SanitizeCell(o.Date),
			validation.SanitizeCell(o.Customer),
			validation.SanitizeCell(o.Symbol),
			string(o.Side),
			validation.SanitizeCell(o.Status),
			strconv.FormatFloat(o.Total, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			log.Error("Error writing CSV record", "orderID", o.ID, "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error("Error flushing CSV export", "error", err)
	}
	log.Info("Exported orders", "count", len(orders))
}

// parseOrderQuery reads symbol, status, start, end, sort, dir, page and per_page.
// Malformed numbers fall back to the first page and the configured page size.
func (h *OrdersHandler) parseOrderQuery(v url.Values) processors.OrderQuery {
	q := processors.OrderQuery{
		Symbol:    strings.TrimSpace(v.Get("symbol")),
		Status:    strings.TrimSpace(v.Get("status")),
		StartDate: strings.TrimSpace(v.Get("start")),
		EndDate:   strings.TrimSpace(v.Get("end")),
		Sort:      strings.ToLower(strings.TrimSpace(v.Get("sort"))),
		Desc:      strings.EqualFold(strings.TrimSpace(v.Get("dir")), "desc"),
		Page:      1,
		PerPage:   h.defaultPageSize,
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	if pp, err := strconv.Atoi(v.Get("per_page")); err == nil && pp > 0 {
		q.PerPage = utils.MinInt(pp, MaxPerPage)
	}
	return q
}
