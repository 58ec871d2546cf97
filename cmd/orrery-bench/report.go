package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/orrery/ecs"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	StarSystems    int
	Bodies         int
	Pipeline       bool
	GCPauseMetrics bool

	// Results
	Frames        uint64
	TotalTime     time.Duration
	UpdateTime    Stats
	PipelineTime  Stats
	Triangles     int64
	Scheduler     *ecs.SchedulerStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Orrery Bench Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Star Systems:** {{.StarSystems}}
- **Body Entities:** {{.Bodies}}
- **Pipeline:** {{.Pipeline}}

## Results
- **Frames:** {{.Frames}}
- **Total Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{- if .Pipeline}}
- **Pipeline Time (Frame):**
  - **Avg:** {{.PipelineTime.Avg}}
  - **Min:** {{.PipelineTime.Min}}
  - **Max:** {{.PipelineTime.Max}}
- **Triangles Drawn:** {{.Triangles}}
{{- end}}
{{with .Scheduler}}
## Systems
| system | runs | avg | max |
|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
