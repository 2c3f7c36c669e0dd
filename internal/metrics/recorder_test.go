package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_SafeToUse(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveBuildDuration(time.Second)
	r.IncPostResult(ResultRendered)
	r.IncBuildOutcome("success")
	r.IncWatchRebuild()
}

func TestPrometheusRecorder_RegistersAndCounts(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveBuildDuration(250 * time.Millisecond)
	r.IncPostResult(ResultRendered)
	r.IncPostResult(ResultRendered)
	r.IncPostResult(ResultFailed)
	r.IncBuildOutcome("warning")
	r.IncWatchRebuild()

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
	}
	require.True(t, byName["blogbuilder_build_duration_seconds"])
	require.True(t, byName["blogbuilder_post_results_total"])
	require.True(t, byName["blogbuilder_build_outcomes_total"])
	require.True(t, byName["blogbuilder_watch_rebuilds_total"])
}
