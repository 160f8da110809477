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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/pokedle/assets"
	"github.com/robalobadob/pokedle/internal/config"
	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/database"
	"github.com/robalobadob/pokedle/internal/httpserver"
	"github.com/robalobadob/pokedle/internal/store"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- game data ---
	r, err := assets.Roster(cfg.RosterFile)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	manifest, err := assets.Manifest(cfg.CardManifestFile)
	if err != nil {
		// Card mode reports itself unavailable; the other modes still run.
		log.Warn().Err(err).Msg("card manifest not loaded")
		manifest = nil
	}
	overrides, err := assets.Overrides(cfg.OverridesFile)
	if err != nil {
		return fmt.Errorf("loading overrides: %w", err)
	}
	log.Info().
		Int("pokemon", r.Len()).
		Int("cardTypes", len(manifest)).
		Int("overrideDays", overrides.Days()).
		Str("db", cfg.DBPath).
		Int("resetHourUtc", cfg.ResetHourUTC).
		Msg("game data loaded")

	sel := &daily.Selector{
		Roster:               r,
		Overrides:            overrides,
		Manifest:             manifest,
		SaturdayFullArtRatio: cfg.SaturdayFullArtRatio,
		AssetBaseURL:         cfg.AssetBaseURL,
	}
	sessions := store.NewMemoryStore()
	api := httpserver.New(httpserver.Options{
		Config:   cfg,
		Selector: sel,
		Sessions: sessions,
		DB:       db,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting pokedle server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Sessions only matter for the live day; drop the rest hourly.
	g.Go(func() error {
		t := time.NewTicker(time.Hour)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-t.C:
				day := daily.MustResolve(now, cfg.ResetHourUTC)
				if n := sessions.Prune(gctx, day); n > 0 {
					log.Info().Int("sessions", n).Stringer("dayKey", day).Msg("pruned stale sessions")
				}
			}
		}
	})

	return g.Wait()
}
