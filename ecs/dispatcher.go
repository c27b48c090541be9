package ecs

import (
	"reflect"
	"strings"
	"time"
)

// DispatcherStats provides statistics about dispatcher execution.
type DispatcherStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Dispatcher runs a fixed, ordered list of systems. The list is set at
// construction and cannot change afterwards.
type Dispatcher struct {
	storage     *Storage
	resources   *Resources
	systems     []System
	systemStats []*systemStatsInternal
}

// NewDispatcher creates a dispatcher for the given systems, in execution order,
// and initializes their Query and Resource fields.
func NewDispatcher(storage *Storage, resources *Resources, systems ...System) *Dispatcher {
	d := &Dispatcher{
		storage:     storage,
		resources:   resources,
		systems:     make([]System, 0, len(systems)),
		systemStats: make([]*systemStatsInternal, 0, len(systems)),
	}

	for _, system := range systems {
		if system == nil {
			panic("cannot dispatch a nil system")
		}
		if len(system.Components()) == 0 {
			panic("system " + systemName(system) + " declares no component types")
		}
		d.initializeFields(system)
		d.systems = append(d.systems, system)
		d.systemStats = append(d.systemStats, &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		})
	}

	return d
}

func (d *Dispatcher) initializeFields(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()

		var arg reflect.Value
		switch {
		case strings.HasPrefix(typeName, "Query["):
			arg = reflect.ValueOf(d.storage)
		case strings.HasPrefix(typeName, "Resource["):
			arg = reflect.ValueOf(d.resources)
		default:
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + fieldType.Name)
		}
		initMethod.Call([]reflect.Value{arg})
	}
}

// Dispatch runs every system once, strictly in order, on the calling goroutine.
func (d *Dispatcher) Dispatch(frame *UpdateFrame) {
	for i, system := range d.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := d.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Systems returns the systems in execution order.
func (d *Dispatcher) Systems() []System {
	out := make([]System, len(d.systems))
	copy(out, d.systems)
	return out
}

// SystemNames returns the type names of the systems in execution order.
func (d *Dispatcher) SystemNames() []string {
	names := make([]string, len(d.systemStats))
	for i, stats := range d.systemStats {
		names[i] = stats.name
	}
	return names
}

// Stats returns statistics about system execution.
func (d *Dispatcher) Stats() *DispatcherStats {
	stats := &DispatcherStats{
		SystemCount: len(d.systems),
		Systems:     make([]SystemStats, len(d.systemStats)),
	}

	var totalExecs int64
	for i, internal := range d.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
