package debugui

import "github.com/plus3/eidstore/ecs"

// SpawnDebugUI creates one entity carrying every debug window.
func SpawnDebugUI(storage *ecs.Storage) ecs.Eid {
	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()
	viewer := NewComponentViewerComponent()
	stats := NewPerformanceStatsComponent(120)

	return ecs.Spawn(storage, &browser, &inspector, &viewer, &stats)
}

// RegisterDebugUIComponents registers the debug window components and the
// ImguiItem component. Call it before the storage allocates.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[ComponentViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
}
