package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/eidstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type crate struct {
	Weight int
	Owner  *crateOwner
	secret string
}

type crateOwner struct {
	Name string
}

func (c *crate) IsEmpty() bool { return c.Weight == 0 }

func newDebugStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[crate](registry)
	RegisterDebugUIComponents(registry)
	return ecs.NewStorage(registry, ecs.WithMaxEntities(32))
}

func TestSpawnDebugUI(t *testing.T) {
	storage := newDebugStorage()

	eid := SpawnDebugUI(storage)
	require.NotEqual(t, ecs.InvalidEid, eid)

	assert.True(t, ecs.Has[EntityBrowserComponent](storage, eid))
	assert.True(t, ecs.Has[ComponentInspectorComponent](storage, eid))
	assert.True(t, ecs.Has[ComponentViewerComponent](storage, eid))
	assert.True(t, ecs.Has[PerformanceStatsComponent](storage, eid))

	stats := ecs.Ref[PerformanceStatsComponent](storage, eid)
	assert.Len(t, stats.frameHistory, 120)
}

func TestEntityBrowserCache(t *testing.T) {
	storage := newDebugStorage()
	a := ecs.Spawn(storage, &crate{Weight: 3})
	b := ecs.Spawn(storage, &crate{Weight: 5})
	ui := SpawnDebugUI(storage)

	browser := ecs.Ref[EntityBrowserComponent](storage, ui)
	browser.rebuildCacheIfNeeded(storage)

	require.Len(t, browser.cache.entities, 3)
	assert.Equal(t, []ecs.Eid{a, b, ui}, []ecs.Eid{
		browser.cache.entities[0].ID,
		browser.cache.entities[1].ID,
		browser.cache.entities[2].ID,
	})
	assert.Equal(t, []string{"debugui.crate"}, browser.cache.entities[0].ComponentTypes)
	assert.Equal(t, 4, browser.cache.entities[2].ComponentCount)

	browser.filterText = "CRATE"
	assert.Len(t, browser.getFilteredEntities(), 2)

	browser.cache.sortColumn = 2
	browser.cache.sortAscending = false
	browser.sortEntities()
	assert.Equal(t, ui, browser.cache.entities[0].ID)

	// Destroying an entity drops it from the cache.
	browser.selectedEntityId = b
	storage.DestroyNow(b)
	browser.rebuildCacheIfNeeded(storage)
	assert.Len(t, browser.cache.entities, 2)
	assert.Equal(t, ecs.InvalidEid, browser.GetSelectedEntity())
}

func TestEntityBrowserCacheSeesBalancedChurn(t *testing.T) {
	storage := newDebugStorage()
	a := ecs.Spawn(storage, &crate{Weight: 3})
	b := storage.Create()

	browser := NewEntityBrowserComponent(50)
	browser.rebuildCacheIfNeeded(storage)
	require.Len(t, browser.cache.entities, 2)

	// Moving the crate keeps every count unchanged.
	ecs.Remove[crate](storage, a)
	ecs.Add(storage, b, &crate{Weight: 3})
	browser.rebuildCacheIfNeeded(storage)

	require.Len(t, browser.cache.entities, 2)
	for _, info := range browser.cache.entities {
		switch info.ID {
		case a:
			assert.Empty(t, info.ComponentTypes)
		case b:
			assert.Equal(t, []string{"debugui.crate"}, info.ComponentTypes)
		}
	}
}

func TestComponentViewerSort(t *testing.T) {
	storage := newDebugStorage()
	ecs.Spawn(storage, &crate{Weight: 1})
	ecs.Spawn(storage, &crate{Weight: 2})
	SpawnDebugUI(storage)

	viewer := NewComponentViewerComponent()
	viewer.cache.types = storage.CollectStats().ComponentBreakdown
	viewer.sortTypes()

	require.NotEmpty(t, viewer.cache.types)
	assert.Equal(t, "debugui.crate", viewer.cache.types[0].Name)
	assert.Equal(t, 2, viewer.cache.types[0].EntityCount)

	viewer.sortColumn = 0
	viewer.sortAscending = true
	viewer.sortTypes()
	assert.Equal(t, ecs.Cid(0), viewer.cache.types[0].Cid)
}

func TestReflectionCache(t *testing.T) {
	rc := NewReflectionCache()

	fields := rc.GetFields(reflect.TypeFor[crate]())
	require.Len(t, fields, 2)
	assert.Equal(t, "Weight", fields[0].Name)
	assert.False(t, fields[0].IsPointer)
	assert.Equal(t, "Owner", fields[1].Name)
	assert.True(t, fields[1].IsPointer)
	assert.Equal(t, reflect.TypeFor[crateOwner](), fields[1].Type)

	// The second lookup is served from the cache.
	assert.Equal(t, fields, rc.GetFields(reflect.TypeFor[crate]()))
	assert.Empty(t, rc.GetFields(reflect.TypeFor[int]()))
}
