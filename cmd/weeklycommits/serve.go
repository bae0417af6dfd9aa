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

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/ericfisherdev/weeklycommits/internal/adapter/driven/aescbc"
	githubadapter "github.com/ericfisherdev/weeklycommits/internal/adapter/driven/github"
	httphandler "github.com/ericfisherdev/weeklycommits/internal/adapter/driving/http"
	"github.com/ericfisherdev/weeklycommits/internal/application"
	"github.com/ericfisherdev/weeklycommits/internal/config"
	"github.com/ericfisherdev/weeklycommits/internal/logging"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

func run(parent context.Context) error {
	// 1. Load configuration (fail fast on missing key material).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"github_api_url", cfg.GitHubAPIURL,
		"fetch_concurrency", cfg.FetchConcurrency,
		"request_rate", cfg.RequestRate,
		"request_timeout", cfg.RequestTimeout,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Build the token cipher once; bad key material is a startup error.
	decryptor, err := aescbc.NewCipher(cfg.EncryptionKey, cfg.EncryptionIV)
	if err != nil {
		return fmt.Errorf("configuring token decryption: %w", err)
	}

	// 4. Wire adapters and services.
	clients := githubadapter.NewClientFactory(cfg.GitHubAPIURL)
	fetcher := application.NewCommitFetcher(cfg.FetchConcurrency, logger)
	activitySvc := application.NewActivityService(decryptor, clients, fetcher, logger)

	var limiter *rate.Limiter
	if cfg.RequestRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestRate), max(1, int(cfg.RequestRate)))
	}

	h := httphandler.NewHandler(activitySvc, cfg.RequestTimeout, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(h, limiter, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout(cfg.RequestTimeout),
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 5. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// 6. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// writeTimeout leaves room for the response after a request times out. A zero
// request timeout disables the write deadline too.
func writeTimeout(requestTimeout time.Duration) time.Duration {
	if requestTimeout <= 0 {
		return 0
	}
	return requestTimeout + 10*time.Second
}
