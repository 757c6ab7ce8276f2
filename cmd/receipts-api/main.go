// Command receipts-api serves the receipt REST API: scanning uploads with the
// configured extractor, storing receipts and answering list, edit, export and
// summary requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"receipt-scanner/internal/config"
	"receipt-scanner/internal/database"
	"receipt-scanner/internal/extraction"
	"receipt-scanner/internal/handlers"
	"receipt-scanner/internal/logging"
	"receipt-scanner/internal/metrics"
	"receipt-scanner/internal/middleware"
	"receipt-scanner/internal/repositories"
	"receipt-scanner/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("config.dotenv_failed", "error", err)
	}

	cfg := config.Load()
	logger := logging.Setup(cfg.Log)

	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server.exit", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Initialize(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	images, err := storage.NewImageStore(cfg.Storage.UploadDir, cfg.Storage.MaxUploadSize)
	if err != nil {
		return err
	}

	extractor, err := extraction.New(cfg.Extraction)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(float64(cfg.Server.RateLimitPerSecond), cfg.Server.RateLimitPerSecond*2)
	go limiter.Run(ctx, time.Minute)

	recorder := metrics.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	e := newServer(cfg, logger, recorder, limiter, db, images, extractor)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server.listening",
			"addr", srv.Addr,
			"env", cfg.Server.Environment,
			"db_driver", cfg.Database.Driver,
			"extraction", cfg.Extraction.Mode,
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server.stopped")
	return nil
}

func newServer(
	cfg *config.Config,
	logger *slog.Logger,
	recorder metrics.Recorder,
	limiter *middleware.RateLimiter,
	db *database.DB,
	images *storage.ImageStore,
	extractor extraction.Extractor,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(recorder, logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(logger))
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders(storage.URLPrefix))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		ExposeHeaders: []string{middleware.TraceIDHeader, echo.HeaderContentDisposition},
	}))
	e.Use(echomw.BodyLimit(cfg.Server.BodyLimit))

	e.GET("/health", handlers.NewHealthCheckHandler(db).HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static(strings.TrimSuffix(storage.URLPrefix, "/"), images.Dir())

	receipts := handlers.NewReceiptHandler(repositories.NewReceiptRepository(db.DB), images, extractor, recorder, logger)
	summaries := handlers.NewSummaryHandler(repositories.NewSummaryRepository(db.DB), logger)

	api := e.Group("/api", limiter.Middleware())
	handlers.RegisterRoutes(api, receipts, summaries)

	return e
}
