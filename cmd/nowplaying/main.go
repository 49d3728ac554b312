package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kendaniels/now-playing/internal/artwork"
	"github.com/kendaniels/now-playing/internal/cache"
	"github.com/kendaniels/now-playing/internal/config"
	"github.com/kendaniels/now-playing/internal/display"
	"github.com/kendaniels/now-playing/internal/domain"
	"github.com/kendaniels/now-playing/internal/indicator"
	"github.com/kendaniels/now-playing/internal/lookup"
	"github.com/kendaniels/now-playing/internal/probe"
	"github.com/kendaniels/now-playing/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:          "nowplaying",
		Short:        "Now-playing metadata for the current media session",
		SilenceUsage: true,
	}

	root.AddCommand(newDaemonCmd(), newWatchCmd(), newGetCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newDaemonCmd runs the headless poll loop under fx lifecycle management.
func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the headless now-playing daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(AppOptions)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := app.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()

			return app.Stop(context.Background())
		},
	}
}

// newWatchCmd runs the terminal indicator.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the current track in a terminal indicator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The indicator owns the screen; keep logging out of the way.
			logger := zap.NewNop()

			cfg := config.NewAppConfig(logger)
			rec, pipeline := buildDisplay(logger, cfg)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			model := indicator.NewModel(ctx, logger, rec, pipeline, cfg.TitleTemplate(), cfg.PollInterval())
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// newGetCmd performs a single lookup and prints the derived query.
func newGetCmd() *cobra.Command {
	var (
		kindFlag string
		cached   bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the search query for the current media session",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.LookupKind(kindFlag)
			if !kind.Valid() {
				return fmt.Errorf("invalid kind %q, want track, artist or album", kindFlag)
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg := config.NewAppConfig(logger)
			orch := buildSearcher(logger, cfg)

			res := orch.Lookup(cmd.Context(), kind, lookup.Options{AllowCacheFallback: cached})
			switch {
			case res.Unsupported:
				return fmt.Errorf("no media provider on this platform: %s", res.Err)
			case res.NotInstalled:
				return fmt.Errorf("media-control is not installed")
			case res.Query == "":
				return fmt.Errorf("nothing eligible is playing")
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Query)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", string(domain.KindTrack), "lookup kind: track, artist or album")
	cmd.Flags().BoolVar(&cached, "cached", false, "fall back to the last eligible session when nothing usable is playing")

	return cmd
}

// buildSearcher wires the probe-to-cache lookup chain without fx, for
// one-shot commands.
func buildSearcher(logger *zap.Logger, cfg *config.AppConfig) display.Searcher {
	s := store.NewFileStore(logger, cfg.StatePath())
	prober := probe.NewMediaProbe(logger, cfg.ProbeTimeout())
	c := cache.NewEligibilityCache(logger, s)
	return lookup.NewOrchestrator(logger, prober, c)
}

// buildDisplay wires the reconciler and artwork pipeline for the indicator.
func buildDisplay(logger *zap.Logger, cfg *config.AppConfig) (*display.Reconciler, *artwork.Pipeline) {
	s := store.NewFileStore(logger, cfg.StatePath())
	prober := probe.NewMediaProbe(logger, cfg.ProbeTimeout())
	c := cache.NewEligibilityCache(logger, s)
	orch := lookup.NewOrchestrator(logger, prober, c)
	rec := display.NewReconciler(logger, orch, s)

	fetcher := artwork.NewFetcher(logger)
	thumb := artwork.NewThumbnailer(logger, cfg.DataDir(), cfg.IconSize())
	pipeline := artwork.NewPipeline(logger, fetcher, thumb)

	return rec, pipeline
}
