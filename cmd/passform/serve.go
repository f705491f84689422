package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/passform/passform-go/internal/config"
	"github.com/passform/passform-go/internal/handler"
	"github.com/passform/passform-go/internal/passgen"
	"github.com/passform/passform-go/internal/repository"
	"github.com/passform/passform-go/internal/service"
	"github.com/passform/passform-go/internal/token"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

const presetPruneInterval = time.Hour

func serve(ctx context.Context) error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	signer := token.NewSigner(cfg.FormSecret, cfg.FormExpiry)
	gen := passgen.NewGenerator(passgen.CryptoSource{})

	deps := handler.RouterDeps{
		Signer:    signer,
		Generator: service.NewGeneratorService(gen),
		Forms:     service.NewFormService(signer, gen),
	}

	// Presets need the database; the rest of the API works without it.
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database unavailable, preset routes disabled", "error", err)
	} else {
		defer db.Close()
		if cfg.MigrateDB {
			if err := repository.Migrate(db); err != nil {
				return err
			}
		}
		deps.Presets = service.NewPresetService(repository.NewPresetRepository(db))
		go prunePresets(ctx, deps.Presets, cfg.FormExpiry)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(ctx, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "presets", deps.Presets != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}

// prunePresets deletes presets not saved within maxAge, once at startup and
// then every presetPruneInterval until ctx is done.
func prunePresets(ctx context.Context, presets *service.PresetService, maxAge time.Duration) {
	ticker := time.NewTicker(presetPruneInterval)
	defer ticker.Stop()

	for {
		n, err := presets.Prune(ctx, time.Now().Add(-maxAge))
		if err != nil {
			slog.Warn("preset prune failed", "error", err)
		} else if n > 0 {
			slog.Info("pruned expired presets", "count", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
