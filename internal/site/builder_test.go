package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/state"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testOptions(src, out string) Options {
	return Options{
		SourceDir: src,
		OutputDir: out,
		Site:      render.SiteInfo{Title: "Dev Notes", Description: "notes"},
	}
}

func TestBuild_WritesOnePagePerPostPlusIndex(t *testing.T) {
	src, out := t.TempDir(), filepath.Join(t.TempDir(), "site")
	writePost(t, src, "2023-05-09-newer.md", "---\ntitle: Newer Post\n---\n# Newer\n\nNew body text.\n")
	writePost(t, src, "2022-02-28-older.md", "---\ntitle: Older Post\nsubtitle: From last year\n---\nOld body text.\n")

	b, err := NewBuilder(testOptions(src, out))
	require.NoError(t, err)

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Equal(t, 2, report.Rendered)
	require.Zero(t, report.Failed)

	require.FileExists(t, filepath.Join(out, "newer.html"))
	require.FileExists(t, filepath.Join(out, "older.html"))

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	// Descending date order: 2023 post listed before 2022 post.
	require.Less(t,
		indexOf(string(index), "Newer Post"),
		indexOf(string(index), "Older Post"))
	require.Contains(t, string(index), "From last year")
}

func TestBuild_MissingSourceDirIsFatal(t *testing.T) {
	b, err := NewBuilder(testOptions(filepath.Join(t.TempDir(), "missing"), t.TempDir()))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.Error(t, err)
}

func TestBuild_PerFileProblemsDoNotAbort(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePost(t, src, "2023-05-09-good.md", "---\ntitle: Good\n---\nbody\n")
	writePost(t, src, "2023-05-10-broken.md", "---\ntitle: never closed\n")
	writePost(t, src, "2023-02-30-baddate.md", "body\n")

	b, err := NewBuilder(testOptions(src, out))
	require.NoError(t, err)

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeWarning, report.Outcome)
	require.Equal(t, 1, report.Rendered)
	require.Equal(t, 2, report.Failed)
	require.FileExists(t, filepath.Join(out, "good.html"))

	summary := report.Summary()
	require.Contains(t, summary, "2023-05-10-broken.md")
	require.Contains(t, summary, "2023-02-30-baddate.md")
}

func TestBuild_StrictUnknownLayoutFails(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePost(t, src, "2023-05-09-odd.md", "---\nlayout: galaxy\n---\nbody\n")

	opts := testOptions(src, out)
	opts.Strict = true
	b, err := NewBuilder(opts)
	require.NoError(t, err)

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.NoFileExists(t, filepath.Join(out, "odd.html"))
}

func TestBuild_LaxUnknownLayoutWarnsAndRenders(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePost(t, src, "2023-05-09-odd.md", "---\nlayout: galaxy\n---\nbody\n")

	b, err := NewBuilder(testOptions(src, out))
	require.NoError(t, err)

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Rendered)
	require.NotEmpty(t, report.Warnings)
	require.FileExists(t, filepath.Join(out, "odd.html"))
}

func TestBuild_IncrementalSkipsUnchangedPosts(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePost(t, src, "2023-05-09-stable.md", "---\ntitle: Stable\n---\nbody\n")

	store, err := state.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	opts := testOptions(src, out)
	opts.Incremental = true
	opts.Store = store

	b, err := NewBuilder(opts)
	require.NoError(t, err)

	first, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Rendered)
	require.Zero(t, first.Skipped)

	second, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Zero(t, second.Rendered)
	require.Equal(t, 1, second.Skipped)

	// Changed content renders again.
	writePost(t, src, "2023-05-09-stable.md", "---\ntitle: Stable\n---\nbody v2\n")
	third, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, third.Rendered)

	// Index still lists the post even on a fully-skipped run.
	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), "Stable")
}

func TestBuild_RenderingIsIdempotent(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePost(t, src, "2023-05-09-same.md", "---\ntitle: Same\ntags: [a, b]\n---\n# H\n\ntext\n")

	b, err := NewBuilder(testOptions(src, out))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(filepath.Join(out, "same.html"))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(filepath.Join(out, "same.html"))
	require.NoError(t, err)

	require.Equal(t, firstBytes, secondBytes)
}

func indexOf(s, sub string) int { return strings.Index(s, sub) }
