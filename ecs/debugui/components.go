package debugui

import (
	"github.com/plus3/lxecs/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	hasSelection       bool
	filterText         string
	filterType         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type TableViewerComponent struct {
	cache         *TableViewerCache
	selectedType  *string
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	queryText              string
	cache                  *QueryDebuggerCache
}

// storageVersion changes whenever an entity is created or a component is
// attached for the first time. Entities are never removed, so equal versions
// mean equal structure.
type storageVersion struct {
	entities   int
	components int
}

func versionOf(storage *ecs.Storage) storageVersion {
	v := storageVersion{entities: storage.EntityCount()}
	for _, t := range storage.Types() {
		v.components += storage.Len(t)
	}
	return v
}
