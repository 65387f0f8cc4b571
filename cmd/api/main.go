package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(cfg.NewLogger())
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		provider *metrics.Provider
		recorder metrics.Recorder = metrics.NoOpRecorder{}
	)
	if cfg.MetricsEnabled {
		p, err := metrics.NewProvider()
		if err != nil {
			slog.Warn("metrics disabled", "error", err)
		} else if rec, err := metrics.NewRecorder(p.MeterProvider(), cfg.MetricsNamespace); err != nil {
			slog.Warn("metrics disabled", "error", err)
		} else {
			provider, recorder = p, rec
		}
	}

	limits := service.Limits{Default: cfg.DefaultLength, Min: cfg.MinLength, Max: cfg.MaxLength}
	genService := service.NewGeneratorService(crypto.NewGenerator(crypto.CryptoSource()), limits, recorder)
	genHandler := handler.NewGeneratorHandler(genService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(ctx, cfg, genHandler, provider),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "auth", cfg.AuthEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if provider != nil {
			return provider.Shutdown(shutdownCtx)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
