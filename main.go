package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/sheetfolio/src/config"
	"github.com/username/sheetfolio/src/database"
	"github.com/username/sheetfolio/src/handlers"
	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/processors"
	"github.com/username/sheetfolio/src/services"
	"github.com/username/sheetfolio/src/sources"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Sheetfolio dashboard server starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.L.Info("Initializing row sources...")
	src, err := buildSources(ctx, config.Cfg)
	if err != nil {
		logger.L.Error("Failed to initialize row sources", "error", err)
		os.Exit(1)
	}

	logger.L.Info("Initializing row cache...", "ttl", config.Cfg.CacheTTL)
	rowCache := cache.New(config.Cfg.CacheTTL, services.CacheCleanupInterval)

	dashboardService := services.NewDefaultDashboardService(src, rowCache)
	uploadService := services.NewUploadService(processors.NewDefaultDashboardProcessor())
	quoteService := services.NewQuoteService(config.Cfg.EnableQuotes, config.Cfg.QuoteURL, config.Cfg.QuoteTimeout)

	logger.L.Info("Configuring routes...")
	router := handlers.NewRouter(dashboardService, uploadService, quoteService, handlers.RouterOptions{
		UsePublicAccess:    config.Cfg.UsePublicAccess,
		AllowedOrigins:     config.Cfg.AllowedOrigins,
		RateLimitRPS:       config.Cfg.RateLimitRPS,
		RateLimitBurst:     config.Cfg.RateLimitBurst,
		MaxUploadSizeBytes: config.Cfg.MaxUploadSizeBytes,
		DefaultPageSize:    config.Cfg.DefaultPageSize,
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.L.Info("Shutdown signal received, draining connections...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.L.Error("Graceful shutdown failed", "error", err)
		}
	}()

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	}
	if database.DB != nil {
		database.DB.Close()
	}
	logger.L.Info("Server stopped gracefully.")
}

// buildSources reads from SQLite tables when a database path is configured and
// from Google Sheets otherwise.
func buildSources(ctx context.Context, cfg *config.AppConfig) (services.DashboardSources, error) {
	if cfg.DatabasePath != "" {
		if err := database.InitDB(cfg.DatabasePath); err != nil {
			return services.DashboardSources{}, err
		}
		src := services.DashboardSources{
			Transactions: database.NewTableSource(database.DB, cfg.TransactionsTable),
			Orders:       database.NewTableSource(database.DB, cfg.OrdersTable),
		}
		if cfg.PositionsTable != "" {
			src.Positions = database.NewTableSource(database.DB, cfg.PositionsTable)
		}
		return src, nil
	}

	sheetCfg := cfg.SheetConfig()
	src := services.DashboardSources{
		Transactions: sources.NewSheetSource(ctx, sheetCfg, cfg.TransactionsRef()),
		Orders:       sources.NewSheetSource(ctx, sheetCfg, cfg.OrdersRef()),
	}
	if cfg.UsePositionsSheet {
		src.Positions = sources.NewSheetSource(ctx, sheetCfg, cfg.PositionsRef())
	}
	logger.L.Info("Sheet sources ready",
		"transactions", src.Transactions.Name(),
		"orders", src.Orders.Name(),
		"positionsEnabled", src.Positions != nil)
	return src, nil
}
