package ecs_test

import (
	"testing"

	"github.com/plus3/eidstore/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ecs.Spawn(storage, &Position{X: 1, Y: 2}, &Velocity{DX: 0.5, DY: 0.5})
	ecs.Spawn(storage, &Position{X: 3, Y: 4})
	ecs.Spawn(storage, &Velocity{DX: 1, DY: 1})

	query := ecs.NewQuery[Position](storage)

	t.Run("execute builds snapshot", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 2, query.Len())

		var xs []float32
		for _, pos := range query.Iter() {
			xs = append(xs, pos.X)
		}
		assert.Equal(t, []float32{1, 3}, xs)
	})

	t.Run("snapshot is stable until the next execute", func(t *testing.T) {
		query.Execute()
		ecs.Spawn(storage, &Position{X: 5})

		assert.Equal(t, 2, query.Len())

		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("entities removed after the snapshot are skipped", func(t *testing.T) {
		query.Execute()

		visited := 0
		for eid := range query.Iter() {
			visited++
			// Destroy the next entity ahead of the loop.
			storage.DestroyNow(eid + 1)
		}

		assert.Equal(t, 2, visited)
	})

	t.Run("values yields pointers into storage", func(t *testing.T) {
		query.Execute()
		for pos := range query.Values() {
			pos.Y = 42
		}

		for eid := range query.Iter() {
			assert.Equal(t, float32(42), ecs.Ref[Position](storage, eid).Y)
		}
	})

	t.Run("unexecuted query snapshots on first use", func(t *testing.T) {
		fresh := ecs.NewQuery[Velocity](storage)
		assert.Equal(t, storage.CountOf(cidOf[Velocity](storage)), fresh.Len())
	})

	t.Run("unregistered type is empty", func(t *testing.T) {
		empty := ecs.NewQuery[Unregistered](storage)
		assert.Equal(t, 0, empty.Len())
		for range empty.Iter() {
			t.Fatal("unexpected entity")
		}
	})
}
