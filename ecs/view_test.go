package ecs_test

import (
	"testing"

	"github.com/plus3/eidstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movingView struct {
	*Position
	*Velocity
	Name *Name `ecs:"optional"`
}

func TestView(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movingView](storage)

	a := ecs.Spawn(storage, &Position{X: 1}, &Velocity{DX: 1}, &Name{Value: "a"})
	b := ecs.Spawn(storage, &Position{X: 2}, &Velocity{DX: 2})
	c := ecs.Spawn(storage, &Position{X: 3})

	t.Run("get fills required and optional fields", func(t *testing.T) {
		got := view.Get(a)
		require.NotNil(t, got)
		assert.Equal(t, float32(1), got.Position.X)
		require.NotNil(t, got.Name)
		assert.Equal(t, "a", got.Name.Value)

		got = view.Get(b)
		require.NotNil(t, got)
		assert.Nil(t, got.Name)

		assert.Nil(t, view.Get(c))
		assert.Nil(t, view.Get(99))
	})

	t.Run("iter yields matching entities", func(t *testing.T) {
		var seen []ecs.Eid
		for eid, item := range view.Iter() {
			seen = append(seen, eid)
			item.Position.X += item.Velocity.DX
		}
		assert.Equal(t, []ecs.Eid{a, b}, seen)
		assert.Equal(t, float32(2), ecs.Ref[Position](storage, a).X)
		assert.Equal(t, float32(4), ecs.Ref[Position](storage, b).X)
	})

	t.Run("iter tolerates destruction", func(t *testing.T) {
		visited := 0
		for eid := range view.Iter() {
			visited++
			storage.DestroyNow(eid)
			storage.DestroyNow(b)
		}
		assert.Equal(t, 1, visited)
		assert.False(t, storage.Exists(a))
	})

	t.Run("spawn attaches non-nil fields", func(t *testing.T) {
		eid := view.Spawn(movingView{Position: &Position{X: 7}, Velocity: &Velocity{DY: 1}})
		require.NotEqual(t, ecs.InvalidEid, eid)
		assert.True(t, ecs.Has[Position](storage, eid))
		assert.True(t, ecs.Has[Velocity](storage, eid))
		assert.False(t, ecs.Has[Name](storage, eid))

		assert.Panics(t, func() {
			view.Spawn(movingView{Position: &Position{}})
		})
	})

	t.Run("invalid struct types panic", func(t *testing.T) {
		assert.Panics(t, func() { ecs.NewView[Position](storage) })
		assert.Panics(t, func() {
			ecs.NewView[struct{ Pos Position }](storage)
		})
		assert.Panics(t, func() {
			ecs.NewView[struct {
				Pos *Position `ecs:"sometimes"`
			}](storage)
		})
	})
}
