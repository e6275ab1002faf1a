// Command gamerecd serves the recommendation API over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gamerec "github.com/davrell/gamerec"
	"github.com/davrell/gamerec/images"
	"github.com/davrell/gamerec/internal/api"
	"github.com/davrell/gamerec/internal/config"
	"github.com/davrell/gamerec/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gamerecd:", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config) error {
	opts, err := cfg.RecommenderOptions()
	if err != nil {
		return err
	}
	rec, err := gamerec.New(opts...)
	if err != nil {
		return err
	}
	defer rec.Close()

	count, err := rec.Len(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logging.Info().
		Str("source", cfg.Catalog.Source).
		Int("items", count).
		Msg("catalog loaded")

	resolver := images.NewResolver(cfg.Images.Dir, images.Config{
		Ext:       cfg.Images.Ext,
		PrefixLen: cfg.Images.PrefixLen,
	})

	handler := api.NewHandler(rec, resolver)
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
