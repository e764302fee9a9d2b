package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/services"
	"github.com/username/sheetfolio/src/utils"
)

const (
	msgSheetUnavailable = "Unable to fetch data from Google Sheets. "
	msgPublicHint       = "The sheet may not be publicly accessible. Please make it public (Share → Anyone with the link) or set up Google Sheets API credentials."
	msgCredentialsHint  = "Please check your credentials or make the sheet publicly accessible."
)

type DataHandler struct {
	dashboard       services.DashboardService
	usePublicAccess bool
}

func NewDataHandler(dashboard services.DashboardService, usePublicAccess bool) *DataHandler {
	return &DataHandler{dashboard: dashboard, usePublicAccess: usePublicAccess}
}

// HandleGetData serves the transaction charts and the orders list.
func (h *DataHandler) HandleGetData(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboard.Overview(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Error building dashboard overview", "error", err)
		utils.SendJSONError(w, h.unavailableMessage(), http.StatusInternalServerError)
		return
	}
	if overview.OrdersList == nil {
		overview.OrdersList = []models.Order{}
	}
	sendJSONWithETag(w, r, overview, "dashboard")
}

// HandleGetRaw serves the transactions sheet rows untouched, in source order.
func (h *DataHandler) HandleGetRaw(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboard.RawRows(r.Context())
	if err != nil || len(rows) == 0 {
		logger.FromContext(r.Context()).Warn("Raw rows unavailable", "error", err)
		utils.SendJSONError(w, "Unable to fetch data", http.StatusInternalServerError)
		return
	}
	sendJSONWithETag(w, r, rows, "raw")
}

// HandleGetPositions serves the open positions. Disabled or failing positions sheets give an empty list.
func (h *DataHandler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.dashboard.Positions(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn("Positions unavailable", "error", err)
	}
	if positions == nil {
		positions = []models.Position{}
	}
	render.JSON(w, r, map[string]any{"positions": positions})
}

// HandleRefresh drops cached sheet rows so the next read refetches them.
func (h *DataHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.dashboard.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (h *DataHandler) unavailableMessage() string {
	if h.usePublicAccess {
		return msgSheetUnavailable + msgPublicHint
	}
	return msgSheetUnavailable + msgCredentialsHint
}
