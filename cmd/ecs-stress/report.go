package main

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/template"
	"time"

	"github.com/goccy/go-json"

	"github.com/plus3/lxecs/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration `json:"duration"`
	Entities   int           `json:"entities"`
	Components int           `json:"components"`
	Systems    int           `json:"systems"`
	Churn      int           `json:"churn"`
	Seed       int64         `json:"seed"`

	// Results
	TotalUpdates   int64             `json:"total_updates"`
	TotalTime      time.Duration     `json:"total_time"`
	UpdateTime     Stats             `json:"update_time"`
	Storage        ecs.StorageStats  `json:"storage"`
	SlowestSystems []ecs.SystemStats `json:"slowest_systems"`
	Memory         Memory            `json:"memory"`
	GCPauseMetrics bool              `json:"-"`
	MemStatsStart  runtime.MemStats  `json:"-"`
	MemStatsEnd    runtime.MemStats  `json:"-"`
}

type Stats struct {
	Min     time.Duration   `json:"min"`
	Max     time.Duration   `json:"max"`
	Avg     time.Duration   `json:"avg"`
	P99     time.Duration   `json:"p99"`
	Samples []time.Duration `json:"-"`
}

// Memory is the difference between the start and end memory statistics.
type Memory struct {
	HeapAllocDelta  int64         `json:"heap_alloc_delta"`
	TotalAllocDelta int64         `json:"total_alloc_delta"`
	SysDelta        int64         `json:"sys_delta"`
	NumGC           uint32        `json:"num_gc"`
	GCPauseTotal    time.Duration `json:"gc_pause_total"`
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := make([]time.Duration, len(s.Samples))
	copy(sorted, s.Samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	s.P99 = sorted[(len(sorted)*99)/100]
}

// Finalize computes the derived fields once the run is over.
func (r *Report) Finalize(dispatcher *ecs.DispatcherStats, top int) {
	r.UpdateTime.Finalize()

	r.Memory = Memory{
		HeapAllocDelta:  int64(r.MemStatsEnd.HeapAlloc) - int64(r.MemStatsStart.HeapAlloc),
		TotalAllocDelta: int64(r.MemStatsEnd.TotalAlloc) - int64(r.MemStatsStart.TotalAlloc),
		SysDelta:        int64(r.MemStatsEnd.Sys) - int64(r.MemStatsStart.Sys),
		NumGC:           r.MemStatsEnd.NumGC - r.MemStatsStart.NumGC,
		GCPauseTotal:    time.Duration(r.MemStatsEnd.PauseTotalNs - r.MemStatsStart.PauseTotalNs),
	}

	if dispatcher == nil {
		return
	}
	systems := make([]ecs.SystemStats, len(dispatcher.Systems))
	copy(systems, dispatcher.Systems)
	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].TotalDuration > systems[j].TotalDuration
	})
	r.SlowestSystems = systems[:min(top, len(systems))]
}

// WriteJSON writes the report as one JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Component Types:** {{.Components}}
- **Systems:** {{.Systems}}
- **Spawns per Tick:** {{.Churn}}
- **Seed:** {{.Seed}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Storage
- **Entities:** {{.Storage.EntityCount}}
- **Components:** {{.Storage.ComponentCount}}
{{range .Storage.Tables}}  - {{.Name}}: {{.Components}} components in {{.Blocks}} blocks
{{end}}
## Slowest Systems
{{range .SlowestSystems}}  - {{.Name}}: total {{.TotalDuration}}, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb .Memory.HeapAllocDelta}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb .Memory.TotalAllocDelta}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{mb .Memory.SysDelta}}
- Num GC:         {{.Memory.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.Memory.GCPauseTotal}}
- **Num GC Cycles:** {{.Memory.NumGC}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
