// Package gitsource fetches post repositories so builds can run straight from
// a remote git URL instead of a local directory.
package gitsource

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	bberrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Source describes one remote post repository.
type Source struct {
	URL    string
	Branch string // empty means the remote default branch
	Depth  int    // shallow clone depth, 0 for full history
}

// Client handles git operations inside a workspace directory.
type Client struct {
	workspaceDir string
}

// NewClient creates a git client rooted at the given workspace directory.
func NewClient(workspaceDir string) *Client {
	return &Client{workspaceDir: workspaceDir}
}

// Clone fetches a fresh copy of the repository into the workspace and returns
// its local path. Any pre-existing checkout at that path is replaced.
func (c *Client) Clone(src Source) (string, error) {
	repoPath := filepath.Join(c.workspaceDir, repoDirName(src.URL))
	slog.Debug("Cloning repository", slog.String("url", src.URL), slog.String("branch", src.Branch), logfields.Path(repoPath))

	if err := os.RemoveAll(repoPath); err != nil {
		return "", fmt.Errorf("remove existing checkout: %w", err)
	}

	opts := &git.CloneOptions{URL: src.URL}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + src.Branch)
		opts.SingleBranch = true
	}
	if src.Depth > 0 {
		opts.Depth = src.Depth
	}

	repo, err := git.PlainClone(repoPath, false, opts)
	if err != nil {
		return "", bberrors.Wrap(err, bberrors.CategoryGit, bberrors.SeverityFatal, "clone repository").
			WithContext("url", src.URL)
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("Repository cloned", slog.String("url", src.URL),
			slog.String("commit", ref.Hash().String()[:8]), logfields.Path(repoPath))
	} else {
		slog.Info("Repository cloned", slog.String("url", src.URL), logfields.Path(repoPath))
	}
	return repoPath, nil
}

// Update pulls the latest changes into an existing checkout, cloning when the
// checkout does not exist yet. Already-up-to-date is not an error.
func (c *Client) Update(src Source) (string, error) {
	repoPath := filepath.Join(c.workspaceDir, repoDirName(src.URL))

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return c.Clone(src)
		}
		return "", bberrors.Wrap(err, bberrors.CategoryGit, bberrors.SeverityFatal, "open repository").
			WithContext("path", repoPath)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", bberrors.Wrap(err, bberrors.CategoryGit, bberrors.SeverityFatal, "open worktree").
			WithContext("path", repoPath)
	}

	pullOpts := &git.PullOptions{}
	if src.Branch != "" {
		pullOpts.ReferenceName = plumbing.ReferenceName("refs/heads/" + src.Branch)
		pullOpts.SingleBranch = true
	}
	if err := wt.Pull(pullOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", bberrors.Wrap(err, bberrors.CategoryGit, bberrors.SeverityFatal, "pull repository").
			WithContext("url", src.URL)
	}

	slog.Info("Repository updated", slog.String("url", src.URL), logfields.Path(repoPath))
	return repoPath, nil
}

// repoDirName derives a stable directory name from the repository URL.
func repoDirName(url string) string {
	base := filepath.Base(url)
	if ext := filepath.Ext(base); ext == ".git" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" || base == "." || base == "/" {
		base = "repo"
	}
	return base
}
