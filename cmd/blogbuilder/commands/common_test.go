package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

func TestBuildCmd_ApplyOverrides(t *testing.T) {
	cfg := config.Default()
	cmd := BuildCmd{Src: "./drafts", Out: "./public", Strict: true, Incremental: true}
	cmd.applyOverrides(cfg)

	require.Equal(t, "./drafts", cfg.Build.Source)
	require.Equal(t, "./public", cfg.Build.Output)
	require.True(t, cfg.Build.Strict)
	require.True(t, cfg.Build.Incremental)
}

func TestBuildCmd_EmptyFlagsKeepConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Build.Source = "./posts-from-config"
	cfg.Build.Strict = true

	var cmd BuildCmd
	cmd.applyOverrides(cfg)

	require.Equal(t, "./posts-from-config", cfg.Build.Source)
	require.True(t, cfg.Build.Strict)
}

func TestJoinRepoPostsDir(t *testing.T) {
	require.Equal(t, "/ws/blog/_posts", joinRepoPostsDir("/ws/blog", "_posts"))
	require.Equal(t, "/ws/blog", joinRepoPostsDir("/ws/blog", ""))
}

func TestRepoWorkspace_IncrementalUsesPersistentCheckout(t *testing.T) {
	cfg := config.Default()
	cfg.Build.Repo = "https://example.com/me/blog.git"
	cfg.Build.Incremental = true
	cfg.Build.WorkspaceDir = filepath.Join(t.TempDir(), "ws")

	ws, update := repoWorkspace(cfg)
	require.True(t, update)
	require.NoError(t, ws.Create())
	require.Equal(t, filepath.Join(cfg.Build.WorkspaceDir, "checkout"), ws.GetPath())

	// The checkout must survive cleanup so the next build can pull into it.
	require.NoError(t, ws.Cleanup())
	require.DirExists(t, ws.GetPath())
}

func TestRepoWorkspace_OneShotIsEphemeral(t *testing.T) {
	cfg := config.Default()
	cfg.Build.Repo = "https://example.com/me/blog.git"

	ws, update := repoWorkspace(cfg)
	require.False(t, update)
	require.NoError(t, ws.Create())

	path := ws.GetPath()
	require.DirExists(t, path)
	require.NoError(t, ws.Cleanup())
	require.NoDirExists(t, path)
}

func TestPrepareSource_LocalDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Build.Source = "./posts"

	dir, cleanup, err := prepareSource(cfg)
	require.NoError(t, err)
	defer cleanup()
	require.Equal(t, "./posts", dir)
}
