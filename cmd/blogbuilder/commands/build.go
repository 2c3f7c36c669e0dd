package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Src         string `help:"Posts source directory (overrides config)"`
	Out         string `short:"o" help:"Output directory for the generated site (overrides config)"`
	Strict      bool   `help:"Treat unknown layouts as errors"`
	Incremental bool   `short:"i" help:"Skip writing posts whose content is unchanged"`
	Repo        string `help:"Git repository URL to build posts from (overrides config)"`
	Branch      string `help:"Branch when building from a git repository"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	b.applyOverrides(cfg)

	report, err := runBuild(context.Background(), cfg, nil)
	if err != nil {
		return err
	}
	fmt.Print(report.Summary())
	return nil
}

// applyOverrides layers CLI flags over the loaded config; flags win.
func (b *BuildCmd) applyOverrides(cfg *config.Config) {
	if b.Src != "" {
		cfg.Build.Source = b.Src
	}
	if b.Out != "" {
		cfg.Build.Output = b.Out
	}
	if b.Strict {
		cfg.Build.Strict = true
	}
	if b.Incremental {
		cfg.Build.Incremental = true
	}
	if b.Repo != "" {
		cfg.Build.Repo = b.Repo
	}
	if b.Branch != "" {
		cfg.Build.Branch = b.Branch
	}
}

// runBuild executes one full build from the effective config. Per-file
// problems land in the report; only fatal conditions return an error. recorder
// may be nil for commands that don't expose metrics.
func runBuild(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (*site.BuildReport, error) {
	sourceDir, cleanup, err := prepareSource(cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	store, closeStore, err := openStore(cfg, cfg.Build.Incremental)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	builder, err := site.NewBuilder(site.Options{
		SourceDir:   sourceDir,
		OutputDir:   cfg.Build.Output,
		Strict:      cfg.Build.Strict,
		Incremental: cfg.Build.Incremental,
		Site:        siteInfo(cfg),
		Store:       store,
		Recorder:    recorder,
	})
	if err != nil {
		return nil, err
	}
	return builder.Build(ctx)
}
