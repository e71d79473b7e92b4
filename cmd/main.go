package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"invoicehub/internal/auth"
	"invoicehub/internal/bootstrap"
	"invoicehub/internal/cache"
	"invoicehub/internal/config"
	cronpkg "invoicehub/internal/cron"
	"invoicehub/internal/handler/api"
	"invoicehub/internal/notify"
	"invoicehub/internal/pkg/clock"
	"invoicehub/internal/repository"
	"invoicehub/internal/router"
	invoicesvc "invoicehub/internal/service/invoice"
	statssvc "invoicehub/internal/service/stats"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Amounts serialize as JSON numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	// --- Stats cache (Redis with in-memory fallback) ---
	reportCache, cacheErr := cache.New(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB)
	if cacheErr != nil {
		logger.Warn("Redis unavailable for stats cache, using in-memory fallback", zap.Error(cacheErr))
	}

	// --- Webhook notifier ---
	var notifier *notify.Webhook
	if cfg.Webhook.URL != "" {
		notifier = notify.NewWebhook(cfg.Webhook.URL, logger)
		logger.Info("Invoice event webhook enabled", zap.String("url", cfg.Webhook.URL))
	}

	// --- Repositories + services ---
	clk := clock.System()
	invoiceRepo := repository.NewInvoiceRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry, clk)

	statsService := statssvc.NewService(invoiceRepo, reportCache, cfg.Stats.CacheTTL, clk, logger)
	invoiceService := invoicesvc.NewService(invoiceRepo, clk, statsService, webhookOrNil(notifier), logger)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	authHandler := api.NewAuthHandler(userRepo, tokens, logger)
	invoiceHandler := api.NewInvoiceHandler(invoiceService, statsService, logger)

	router.Setup(e, tokens, authHandler, invoiceHandler)

	// --- Cron Scheduler ---
	scheduler := cronpkg.New(statsService, cfg.Stats.ReportCron, logger)
	scheduler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting invoice service", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	// Stop cron
	ctx := scheduler.Stop()
	<-ctx.Done()

	// Stop HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// webhookOrNil avoids storing a typed nil in the notifier interface.
func webhookOrNil(w *notify.Webhook) invoicesvc.EventNotifier {
	if w == nil {
		return nil
	}
	return w
}
