// Package watch rebuilds the site when source posts change, with optional
// periodic full rebuilds.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// RebuildFunc runs one full site build.
type RebuildFunc func(ctx context.Context) error

// Watcher debounces filesystem events on the source directory and triggers
// rebuilds. Rapid bursts of writes (editor save, git checkout) collapse into
// a single rebuild.
type Watcher struct {
	sourceDir string
	debounce  time.Duration
	interval  time.Duration // 0 disables periodic rebuilds
	rebuild   RebuildFunc
	recorder  metrics.Recorder
}

// New creates a watcher over sourceDir.
func New(sourceDir string, debounce, interval time.Duration, rebuild RebuildFunc, recorder metrics.Recorder) *Watcher {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Watcher{
		sourceDir: sourceDir,
		debounce:  debounce,
		interval:  interval,
		rebuild:   rebuild,
		recorder:  recorder,
	}
}

// Run blocks until ctx is canceled, rebuilding on post file changes and on the
// periodic schedule when configured.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.sourceDir); err != nil {
		return fmt.Errorf("watch source directory %s: %w", w.sourceDir, err)
	}
	slog.Info("Watching source directory", logfields.Source(w.sourceDir),
		slog.Duration("debounce", w.debounce))

	if w.interval > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(w.interval),
			gocron.NewTask(func() { w.fire(ctx, "schedule") }),
		)
		if err != nil {
			return fmt.Errorf("schedule periodic rebuild: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("Periodic rebuild enabled", slog.Duration("interval", w.interval))
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watcher stopping")
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			slog.Debug("Source change detected", logfields.File(filepath.Base(ev.Name)),
				slog.String("op", ev.Op.String()))
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))

		case <-timer.C:
			w.fire(ctx, "fs_event")
		}
	}
}

func (w *Watcher) fire(ctx context.Context, trigger string) {
	w.recorder.IncWatchRebuild()
	slog.Info("Rebuilding site", slog.String("trigger", trigger))
	if err := w.rebuild(ctx); err != nil {
		slog.Error("Rebuild failed", slog.String("trigger", trigger), logfields.Error(err))
	}
}

// relevant filters watcher noise: only mutations of post-shaped filenames
// matter.
func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return post.IsPostFilename(filepath.Base(ev.Name))
}
