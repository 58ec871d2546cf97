package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orrery/ecs"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:    time.Second,
		StarSystems: 2,
		Bodies:      20,
		Frames:      60,
		Scheduler: &ecs.SchedulerStats{Systems: []ecs.SystemStats{
			{Name: "KinematicSystem", ExecutionCount: 60, AvgDuration: time.Microsecond},
		}},
	}
	r.MemStatsStart.NumGC = 1
	r.MemStatsEnd.NumGC = 4

	var out strings.Builder
	require.NoError(t, r.Generate(&out))

	text := out.String()
	assert.Contains(t, text, "**Body Entities:** 20")
	assert.Contains(t, text, "| KinematicSystem | 60 | 1µs |")
	assert.Contains(t, text, "Num GC:         1 (start) -> 4 (end) -> delta: 3")
	assert.NotContains(t, text, "Pipeline Time")
	assert.NotContains(t, text, "GC Pause Durations")

	r.Pipeline = true
	r.GCPauseMetrics = true
	out.Reset()
	require.NoError(t, r.Generate(&out))
	assert.Contains(t, out.String(), "Pipeline Time")
	assert.Contains(t, out.String(), "GC Pause Durations")
}
