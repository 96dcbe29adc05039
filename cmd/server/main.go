package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cbr-rates-service/internal/adapter/cache"
	httpRouter "cbr-rates-service/internal/adapter/http"
	"cbr-rates-service/internal/adapter/notifier"
	"cbr-rates-service/internal/adapter/repository"
	"cbr-rates-service/internal/config"
	"cbr-rates-service/internal/domain/model"
	"cbr-rates-service/internal/domain/ports"
	"cbr-rates-service/internal/metrics"
	"cbr-rates-service/internal/service"
	"cbr-rates-service/pkg/logger"
)

func main() {
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	log.Info("Starting CBR rates service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics()

	snapshotCache := cache.NewMemory[*model.Snapshot](
		cfg.Cache.TTL,
		log,
		appMetrics.CacheHitsTotal,
		appMetrics.CacheMissesTotal,
	)

	feed := repository.NewCBRFeed(
		cfg.CBR.DailyURL,
		cfg.CBR.DynamicURL,
		cfg.CBR.Timeout,
		log,
		appMetrics.UpstreamRequestsTotal,
	)

	var events ports.EventRecorder = notifier.Noop{}
	if cfg.Profile.BaseURL != "" {
		events = notifier.NewProfile(cfg.Profile.BaseURL, cfg.Profile.ClientID, cfg.Profile.Timeout, log)
		log.Info("Event recording enabled", "profile_url", cfg.Profile.BaseURL)
	}

	ratesService := service.NewRatesService(feed, snapshotCache, log)
	handler := httpRouter.NewHandler(ratesService, events, log, appMetrics)

	router := httpRouter.NewRouter(handler, log, appMetrics)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
