// Package site orchestrates collection and rendering into an output
// directory: one HTML document per post plus an index listing.
package site

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/collect"
	bberrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/state"
)

// Options configure a Builder.
type Options struct {
	SourceDir   string
	OutputDir   string
	Strict      bool
	Incremental bool
	Site        render.SiteInfo
	Store       *state.Store     // optional; required for Incremental
	Recorder    metrics.Recorder // optional; defaults to NoopRecorder
}

// Builder is a pure function of (source directory contents) → (output
// directory contents); it holds no hidden mutable state between Build calls.
type Builder struct {
	opts      Options
	collector *collect.Collector
	renderer  *render.Renderer
	recorder  metrics.Recorder
}

// NewBuilder wires a collector and renderer for the given options.
func NewBuilder(opts Options) (*Builder, error) {
	renderer, err := render.NewRenderer(opts.Site, render.Options{Strict: opts.Strict})
	if err != nil {
		return nil, err
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Builder{
		opts:      opts,
		collector: collect.NewCollector(opts.SourceDir),
		renderer:  renderer,
		recorder:  recorder,
	}, nil
}

// Build runs the full pipeline. Per-file problems are aggregated into the
// returned report; the error is non-nil only for fatal conditions (missing
// source directory, unwritable output directory).
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	report := NewBuildReport()
	slog.Info("Starting site build",
		logfields.BuildID(report.BuildID),
		logfields.Source(b.opts.SourceDir),
		logfields.Output(b.opts.OutputDir))

	posts, problems, err := b.collector.Scan()
	if err != nil {
		b.recorder.IncBuildOutcome(string(OutcomeFailed))
		return nil, err
	}
	report.Posts = len(posts)

	for _, prob := range problems {
		if prob.Warning {
			report.AddWarning(prob.String())
			continue
		}
		report.AddFile(FileResult{File: prob.File, Status: StatusFailed, Err: prob.Err})
		b.recorder.IncPostResult(metrics.ResultFailed)
	}

	if err := os.MkdirAll(b.opts.OutputDir, 0o755); err != nil {
		b.recorder.IncBuildOutcome(string(OutcomeFailed))
		return nil, bberrors.Wrap(err, bberrors.CategoryFileSystem, bberrors.SeverityFatal,
			"create output directory").WithContext("path", b.opts.OutputDir)
	}

	entries := make([]render.IndexEntry, 0, len(posts))
	for _, p := range posts {
		entry, res := b.buildOne(ctx, p)
		report.AddFile(res)
		switch res.Status {
		case StatusRendered:
			b.recorder.IncPostResult(metrics.ResultRendered)
		case StatusSkipped:
			b.recorder.IncPostResult(metrics.ResultSkipped)
		case StatusFailed:
			b.recorder.IncPostResult(metrics.ResultFailed)
			continue
		}
		if lay := p.Layout(); lay != "" && !b.renderer.KnownLayout(lay) && !b.opts.Strict {
			report.AddWarning(fmt.Sprintf("%s: unknown layout %q, used %q", p.SourceName, lay, render.DefaultLayout))
		}
		entries = append(entries, entry)
	}

	if err := b.writeIndex(entries); err != nil {
		b.recorder.IncBuildOutcome(string(OutcomeFailed))
		return nil, err
	}

	report.Finalize()
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(string(report.Outcome))

	slog.Info("Site build finished",
		logfields.BuildID(report.BuildID),
		slog.String("outcome", string(report.Outcome)),
		slog.Int("rendered", report.Rendered),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))

	return report, nil
}

// buildOne renders a single post and writes its output document. The write is
// skipped (not the render: index entries still need the HTML) when incremental
// mode finds the content hash unchanged and the output already exists.
func (b *Builder) buildOne(ctx context.Context, p *post.Post) (render.IndexEntry, FileResult) {
	rendered, err := b.renderer.Render(p)
	if err != nil {
		return render.IndexEntry{}, FileResult{File: p.SourceName, Slug: p.Slug, Status: StatusFailed, Err: err}
	}

	entry := render.IndexEntry{
		Slug:     p.Slug,
		Title:    p.Title(),
		Subtitle: p.Subtitle(),
		Date:     p.Date,
		Tags:     p.Tags(),
		Excerpt:  Excerpt(rendered),
		Href:     post.OutputName(p.Slug),
	}

	outPath := filepath.Join(b.opts.OutputDir, post.OutputName(p.Slug))
	hash := state.HashContent(frontmatter.Document(p.Meta, p.Body))

	if b.opts.Incremental && b.opts.Store != nil {
		prev, ok, lookupErr := b.opts.Store.Lookup(ctx, p.Slug)
		if lookupErr != nil {
			slog.Warn("Build cache lookup failed, rendering anyway",
				logfields.Slug(p.Slug), logfields.Error(lookupErr))
		} else if ok && prev == hash && fileExists(outPath) {
			slog.Debug("Post unchanged, skipping write", logfields.Slug(p.Slug))
			return entry, FileResult{File: p.SourceName, Slug: p.Slug, Status: StatusSkipped}
		}
	}

	if err := writeDocument(outPath, rendered); err != nil {
		return entry, FileResult{File: p.SourceName, Slug: p.Slug, Status: StatusFailed,
			Err: bberrors.Wrap(err, bberrors.CategoryFileSystem, bberrors.SeverityError, "write output").
				WithContext("path", outPath)}
	}

	if b.opts.Store != nil {
		if err := b.opts.Store.Record(ctx, p.Slug, p.SourceName, hash, time.Now()); err != nil {
			slog.Warn("Build cache record failed", logfields.Slug(p.Slug), logfields.Error(err))
		}
	}

	slog.Debug("Post rendered", logfields.Slug(p.Slug), logfields.Path(outPath))
	return entry, FileResult{File: p.SourceName, Slug: p.Slug, Status: StatusRendered}
}

func (b *Builder) writeIndex(entries []render.IndexEntry) error {
	rendered, err := b.renderer.RenderIndex(entries)
	if err != nil {
		return bberrors.Wrap(err, bberrors.CategoryRender, bberrors.SeverityFatal, "render index")
	}
	indexPath := filepath.Join(b.opts.OutputDir, "index.html")
	if err := writeDocument(indexPath, rendered); err != nil {
		return bberrors.Wrap(err, bberrors.CategoryFileSystem, bberrors.SeverityFatal,
			"write index").WithContext("path", indexPath)
	}
	return nil
}

// writeDocument writes one output document with a scoped file handle that is
// closed on every exit path; a close failure surfaces as the write error.
func writeDocument(path, content string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = io.WriteString(f, content)
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
