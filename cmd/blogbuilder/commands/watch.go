package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command: build once, then rebuild on source
// changes until interrupted.
type WatchCmd struct {
	Src string `help:"Posts source directory (overrides config)"`
	Out string `short:"o" help:"Output directory for the generated site (overrides config)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if w.Src != "" {
		cfg.Build.Source = w.Src
	}
	if w.Out != "" {
		cfg.Build.Output = w.Out
	}
	// Watch mode observes a local directory; a configured git source would be
	// invisible to the file watcher.
	cfg.Build.Repo = ""

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rebuild := func(ctx context.Context) error {
		report, err := runBuild(ctx, cfg, nil)
		if err != nil {
			return err
		}
		fmt.Print(report.Summary())
		return nil
	}

	if err := rebuild(ctx); err != nil {
		return err
	}

	watcher := watch.New(cfg.Build.Source,
		time.Duration(cfg.Watch.DebounceSeconds)*time.Second,
		time.Duration(cfg.Watch.RebuildIntervalMinutes)*time.Minute,
		rebuild, nil)
	return watcher.Run(ctx)
}
