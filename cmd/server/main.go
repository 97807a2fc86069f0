package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/sitesettle/internal/config"
	"github.com/mmynk/sitesettle/internal/middleware"
	"github.com/mmynk/sitesettle/internal/service"
	"github.com/mmynk/sitesettle/internal/storage/sqlite"
	"github.com/mmynk/sitesettle/pkg/api/apiconnect"
	"github.com/mmynk/sitesettle/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	logger := slog.Default()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	mux := http.NewServeMux()

	// Register Connect services
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(logger),
	)
	path, handler := apiconnect.NewSettlementServiceHandler(service.NewSettlementService(store), interceptors)
	mux.Handle(path, handler)

	mux.Handle(cfg.MetricsPath, promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Add logging and CORS middleware
	logged := middleware.RequestLogger(logger, middleware.CORS(cfg.CORSAllowOrigin, mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(logged, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", server.Addr, "metrics", cfg.MetricsPath)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
