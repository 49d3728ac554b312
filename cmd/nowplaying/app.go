package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/kendaniels/now-playing/internal/artwork"
	"github.com/kendaniels/now-playing/internal/cache"
	"github.com/kendaniels/now-playing/internal/config"
	"github.com/kendaniels/now-playing/internal/display"
	"github.com/kendaniels/now-playing/internal/domain"
	"github.com/kendaniels/now-playing/internal/lookup"
	"github.com/kendaniels/now-playing/internal/probe"
	"github.com/kendaniels/now-playing/internal/store"
)

// AppOptions is the full daemon dependency graph. Tests validate it with
// fx.ValidateApp so a missing fx.Provide fails fast.
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	fx.Provide(
		newLogger,
		config.NewAppConfig,
		newStore,
		newProbe,
		cache.NewEligibilityCache,
		newOrchestrator,
		newReconciler,
		artwork.NewFetcher,
		newThumbnailer,
		artwork.NewPipeline,
	),

	fx.Invoke(registerHooks),
)

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newStore(logger *zap.Logger, cfg *config.AppConfig) domain.Store {
	return store.NewFileStore(logger, cfg.StatePath())
}

func newProbe(logger *zap.Logger, cfg *config.AppConfig) domain.Prober {
	return probe.NewMediaProbe(logger, cfg.ProbeTimeout())
}

func newOrchestrator(logger *zap.Logger, prober domain.Prober, c *cache.EligibilityCache) display.Searcher {
	return lookup.NewOrchestrator(logger, prober, c)
}

func newReconciler(logger *zap.Logger, searcher display.Searcher, s domain.Store) *display.Reconciler {
	return display.NewReconciler(logger, searcher, s)
}

func newThumbnailer(logger *zap.Logger, cfg *config.AppConfig) *artwork.Thumbnailer {
	return artwork.NewThumbnailer(logger, cfg.DataDir(), cfg.IconSize())
}

// registerHooks starts the poll loop on application start and drains it on
// shutdown.
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	cfg *config.AppConfig,
	rec *display.Reconciler,
	pipeline *artwork.Pipeline,
) {
	loopCtx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Now Playing daemon started",
				zap.Duration("pollInterval", cfg.PollInterval()))
			wg.Add(1)
			go func() {
				defer wg.Done()
				runLoop(loopCtx, logger, cfg, rec, pipeline)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			cancel()
			wg.Wait()
			return nil
		},
	})
}

// runLoop polls the reconciler and keeps the artwork icon current until ctx
// is cancelled.
func runLoop(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig, rec *display.Reconciler, pipeline *artwork.Pipeline) {
	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	var lastArtwork string
	for {
		state := rec.Refresh(ctx)
		if state.ArtworkURL != "" && state.ArtworkURL != lastArtwork {
			if _, err := pipeline.RenderIcon(ctx, state.ArtworkURL); err != nil {
				logger.Debug("Artwork icon render failed", zap.Error(err))
			} else {
				lastArtwork = state.ArtworkURL
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
