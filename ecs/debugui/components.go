package debugui

import (
	"github.com/plus3/eidstore/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.Eid
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func (eb *EntityBrowserComponent) IsEmpty() bool {
	return eb.cache == nil
}

type ComponentInspectorComponent struct {
	open             bool
	selectedEntityId ecs.Eid
}

func (ci *ComponentInspectorComponent) IsEmpty() bool {
	return !ci.open
}

type ComponentViewerComponent struct {
	cache         *ComponentViewerCache
	selectedCid   *ecs.Cid
	sortColumn    int
	sortAscending bool
}

func (cv *ComponentViewerComponent) IsEmpty() bool {
	return cv.cache == nil
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func (ps *PerformanceStatsComponent) IsEmpty() bool {
	return ps.historyFrames == 0
}
