package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/services"
	"github.com/username/sheetfolio/src/utils"
)

type QuoteHandler struct {
	quotes services.QuoteService
}

func NewQuoteHandler(quotes services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// HandleGetQuotes serves last prices for ?symbols=A,B,C.
func (h *QuoteHandler) HandleGetQuotes(w http.ResponseWriter, r *http.Request) {
	symbols := strings.Split(r.URL.Query().Get("symbols"), ",")
	quotes, err := h.quotes.GetQuotes(r.Context(), symbols)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuotesDisabled):
			utils.SendJSONError(w, "Quotes disabled", http.StatusBadRequest)
		case errors.Is(err, services.ErrNoSymbols):
			utils.SendJSONError(w, "No symbols provided", http.StatusBadRequest)
		default:
			logger.FromContext(r.Context()).Error("Quote lookup failed", "error", err)
			utils.SendJSONError(w, "Unable to fetch quotes", http.StatusBadGateway)
		}
		return
	}
	render.JSON(w, r, map[string]any{"quotes": quotes})
}
