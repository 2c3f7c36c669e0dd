package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
	"git.home.luguber.info/inful/blogbuilder/internal/watch"
)

// PreviewCmd implements the 'preview' command: build the site and serve it
// locally, optionally rebuilding on source changes.
type PreviewCmd struct {
	Addr  string `help:"Listen address (overrides config)"`
	Watch bool   `short:"w" help:"Rebuild on source changes while serving"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p.Addr != "" {
		cfg.Preview.Addr = p.Addr
	}
	cfg.Build.Repo = ""

	var registry *prom.Registry
	var recorder metrics.Recorder
	if cfg.Preview.Metrics {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rebuild := func(ctx context.Context) error {
		report, err := runBuild(ctx, cfg, recorder)
		if err != nil {
			return err
		}
		fmt.Print(report.Summary())
		return nil
	}

	if err := rebuild(ctx); err != nil {
		return err
	}

	if p.Watch {
		watcher := watch.New(cfg.Build.Source,
			time.Duration(cfg.Watch.DebounceSeconds)*time.Second,
			time.Duration(cfg.Watch.RebuildIntervalMinutes)*time.Minute,
			rebuild, recorder)
		go func() { _ = watcher.Run(ctx) }()
	}

	server := preview.New(cfg.Preview.Addr, cfg.Build.Output, registry)
	return server.Start(ctx)
}
