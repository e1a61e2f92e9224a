package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/courier/internal/config"
	"github.com/UnknownOlympus/courier/internal/geocoding"
	"github.com/UnknownOlympus/courier/internal/logger"
	"github.com/UnknownOlympus/courier/internal/metrics"
	"github.com/UnknownOlympus/courier/internal/repository"
	"github.com/UnknownOlympus/courier/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// providerRateLimit is the request budget per second shared by all workers.
const providerRateLimit = 50

// main runs the geocoding worker that fills in coordinates for stored locations.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	appLog := logger.Setup(cfg.Env, os.Stdout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(ctx,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, appLog)
	if err = repo.Migrate(ctx); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: providerRateLimit / cfg.Workers,
		Logger:    appLog,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	appLog.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	geoService := service.NewGeocodingService(
		appLog,
		repo,
		geoProvider,
		cfg.ProviderType,
		appMetrics,
		cfg.Workers,
		cfg.Interval,
		cfg.NameSuffix,
	)

	appLog.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	go startMonitoringServer(ctx, appLog, reg, dtb, cfg.Port)
	go geoService.Run(ctx)

	<-ctx.Done()

	appLog.InfoContext(ctx, "Shutdown signal received. Stopping application...")
}

// startMonitoringServer serves /healthz (database ping) and /metrics on the given port
// until ctx is cancelled.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	const (
		readTimeout     = 5 * time.Second
		writeTimeout    = 10 * time.Second
		shutdownTimeout = 5 * time.Second
	)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}
