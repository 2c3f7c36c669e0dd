// Package commands holds the CLI command implementations.
package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/gitsource"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/state"
	"git.home.luguber.info/inful/blogbuilder/internal/workspace"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site from the posts directory"`
	List    ListCmd    `cmd:"" help:"List publishable posts without building"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild the site whenever posts change"`
	Preview PreviewCmd `cmd:"" help:"Serve the built site over HTTP"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel(c.Verbose),
	}))
	slog.SetDefault(logger)
	return nil
}

// siteInfo maps the site section of the config onto the renderer's view of it.
func siteInfo(cfg *config.Config) render.SiteInfo {
	return render.SiteInfo{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
		Author:      cfg.Site.Author,
	}
}

// prepareSource resolves the posts directory, fetching the configured git
// repository into a workspace when one is set. The returned cleanup must run
// after the build.
func prepareSource(cfg *config.Config) (string, func(), error) {
	if cfg.Build.Repo == "" {
		return cfg.Build.Source, func() {}, nil
	}

	ws, update := repoWorkspace(cfg)
	if err := ws.Create(); err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}

	client := gitsource.NewClient(ws.GetPath())
	src := gitsource.Source{URL: cfg.Build.Repo, Branch: cfg.Build.Branch}

	var repoPath string
	var err error
	if update {
		repoPath, err = client.Update(src)
	} else {
		src.Depth = 1
		repoPath, err = client.Clone(src)
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return joinRepoPostsDir(repoPath, cfg.Build.RepoPostsDir), cleanup, nil
}

// repoWorkspace picks the checkout strategy. Incremental builds keep a
// persistent checkout and pull into it, pairing with the build cache; one-shot
// builds clone fresh into an ephemeral directory that is removed afterwards.
func repoWorkspace(cfg *config.Config) (*workspace.Manager, bool) {
	if cfg.Build.Incremental {
		return workspace.NewPersistentManager(cfg.Build.WorkspaceDir, "checkout"), true
	}
	return workspace.NewManager(""), false
}

// openStore opens the build cache when incremental mode is on. The returned
// closer is a no-op otherwise.
func openStore(cfg *config.Config, incremental bool) (*state.Store, func(), error) {
	if !incremental {
		return nil, func() {}, nil
	}
	store, err := state.Open(cfg.Build.CacheFile)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close build cache", logfields.Error(err))
		}
	}, nil
}

// joinRepoPostsDir locates the posts directory inside a cloned repository.
func joinRepoPostsDir(repoPath, postsDir string) string {
	if postsDir == "" {
		return repoPath
	}
	return filepath.Join(repoPath, postsDir)
}
