package site

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess BuildOutcome = "success"
	OutcomeWarning BuildOutcome = "warning"
	OutcomeFailed  BuildOutcome = "failed"
)

// FileStatus classifies what happened to one source file during a build.
type FileStatus string

const (
	StatusRendered FileStatus = "rendered"
	StatusSkipped  FileStatus = "skipped" // unchanged under incremental mode
	StatusFailed   FileStatus = "failed"  // collected error, file not rendered
)

// FileResult is the per-file line item of a build report.
type FileResult struct {
	File   string
	Slug   string
	Status FileStatus
	Err    error
}

// BuildReport captures high-level metrics about a site generation run. Every
// recoverable per-file problem lands here instead of aborting the batch.
type BuildReport struct {
	BuildID  string
	Start    time.Time
	End      time.Time
	Posts    int // posts that entered the pipeline
	Rendered int
	Skipped  int
	Failed   int
	Files    []FileResult
	Warnings []string
	Outcome  BuildOutcome
}

// NewBuildReport starts a report with a fresh build id.
func NewBuildReport() *BuildReport {
	return &BuildReport{
		BuildID: uuid.NewString(),
		Start:   time.Now(),
	}
}

// AddFile records a per-file result and bumps the matching counter.
func (r *BuildReport) AddFile(res FileResult) {
	r.Files = append(r.Files, res)
	switch res.Status {
	case StatusRendered:
		r.Rendered++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// AddWarning records an advisory message (the file was still processed).
func (r *BuildReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Finalize stamps the end time and derives the overall outcome.
func (r *BuildReport) Finalize() {
	r.End = time.Now()
	switch {
	case r.Failed > 0 && r.Rendered == 0 && r.Skipped == 0:
		r.Outcome = OutcomeFailed
	case r.Failed > 0 || len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Duration returns the wall time of the build.
func (r *BuildReport) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Summary renders the user-facing build summary printed at build end.
func (r *BuildReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build %s: %s\n", r.BuildID, r.Outcome)
	fmt.Fprintf(&b, "  posts: %d  rendered: %d  skipped: %d  failed: %d\n",
		r.Posts, r.Rendered, r.Skipped, r.Failed)
	for _, f := range r.Files {
		if f.Status == StatusFailed {
			fmt.Fprintf(&b, "  failed: %s: %v\n", f.File, f.Err)
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", w)
	}
	return b.String()
}
