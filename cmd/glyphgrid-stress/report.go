package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/glyphgrid/screen"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Width    int
	Height   int
	Walkers  int
	Walls    int

	// Results
	TotalTime      time.Duration
	FrameTime      Stats
	Screen         screen.Stats
	Drawn          int64
	Bumps          int64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
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

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Glyph Grid Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Grid:** {{.Width}}x{{.Height}}
- **Walkers:** {{.Walkers}}
- **Walls:** {{.Walls}}

## Performance Results
- **Frames:** {{.Screen.Batches}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time (resolve + project):**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
- **Resolve Time:**
  - **Avg:** {{.Screen.AvgResolve}}
  - **Min:** {{.Screen.MinResolve}}
  - **Max:** {{.Screen.MaxResolve}}
- **Draw Records:** {{.Drawn}}
- **Failed Actions:** {{.Bumps}}

## Actions
| Kind | Queued | Applied | Failed |
|---|---|---|---|
{{- range .Screen.Kinds}}
| {{.Kind}} | {{.Queued}} | {{.Applied}} | {{.Failed}} |
{{- end}}

## Occupancy
{{- range .Screen.Layers}}
- {{.Layer}}: {{.Items}} items over {{.Occupied}}/{{.Cells}} cells ({{pct .Occupied .Cells}})
{{- end}}
- Pool: {{.Screen.PoolLive}} live of {{.Screen.PoolCap}} (grew {{.Screen.PoolGrown}} times)

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"pct": func(a, b int) string {
			if b == 0 {
				return "0.0%"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(a)/float64(b))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
