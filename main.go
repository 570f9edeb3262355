package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"thenumbers/internal/api"
	"thenumbers/internal/logger"
	"thenumbers/internal/middleware"
	"thenumbers/internal/service"
	"thenumbers/internal/telemetry"
	"thenumbers/pkg/config"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to set up telemetry: %v", err)
	}

	// 初始化 services
	services, err := service.NewServices(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	opts := api.Options{
		Logger:      appLogger,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = middleware.NewMetrics()
		opts.MetricsPath = cfg.Metrics.Path
	}

	// 設置路由，路由表有錯誤時不啟動伺服器
	router, err := api.NewRouter(cfg, services, opts)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      otelhttp.NewHandler(router, "thenumbers"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", "addr", srv.Addr, "debug", cfg.Server.Debug)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			appLogger.Error("server error", "error", err)
		}
	case <-ctx.Done():
		appLogger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown error", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		appLogger.Error("telemetry shutdown error", "error", err)
	}

	appLogger.Info("server stopped")
}
