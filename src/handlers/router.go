package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/username/sheetfolio/src/metrics"
	"github.com/username/sheetfolio/src/services"
)

// RouterOptions are the HTTP-level settings of the API.
type RouterOptions struct {
	UsePublicAccess    bool
	AllowedOrigins     []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxUploadSizeBytes int64
	DefaultPageSize    int
}

// NewRouter mounts every API route on a chi router with the standard middleware chain.
func NewRouter(dashboard services.DashboardService, uploads services.UploadService, quotes services.QuoteService, opts RouterOptions) http.Handler {
	dataHandler := NewDataHandler(dashboard, opts.UsePublicAccess)
	ordersHandler := NewOrdersHandler(dashboard, opts.DefaultPageSize)
	quoteHandler := NewQuoteHandler(quotes)
	uploadHandler := NewUploadHandler(uploads, opts.MaxUploadSizeBytes)

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RecovererMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(CORSMiddleware(opts.AllowedOrigins))

	r.Get("/healthz", HandleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/data", dataHandler.HandleGetData)
		r.Get("/raw", dataHandler.HandleGetRaw)
		r.Get("/positions", dataHandler.HandleGetPositions)
		r.Post("/refresh", dataHandler.HandleRefresh)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.HandleGetOrders)
			r.Get("/ledger", ordersHandler.HandleGetLedger)
			r.Get("/symbols", ordersHandler.HandleGetSymbols)
			r.Get("/export", ordersHandler.HandleExportOrders)
		})

		r.Get("/quotes", quoteHandler.HandleGetQuotes)
		r.Post("/upload", uploadHandler.HandleUpload)
	})

	return r
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
