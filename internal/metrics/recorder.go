package metrics

import "time"

// PostResult enumerates per-post outcome categories for counters.
type PostResult string

const (
	ResultRendered PostResult = "rendered"
	ResultSkipped  PostResult = "skipped"
	ResultFailed   PostResult = "failed"
)

// Recorder defines observability hooks for build metrics. Implementations may
// forward to Prometheus, OpenTelemetry, etc. The NoopRecorder makes injection
// optional.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncPostResult(result PostResult)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed
	IncWatchRebuild()
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncPostResult(PostResult)           {}
func (NoopRecorder) IncBuildOutcome(string)             {}
func (NoopRecorder) IncWatchRebuild()                   {}
