package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/plus3/eidstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration: time.Second,
		Entities: 10,
		Capacity: 11,
		Systems:  1,
		Storage: ecs.StorageStats{
			TotalEntityCount: 7,
			ComponentBreakdown: []ecs.ComponentTypeStats{
				{Cid: 0, Name: "main.Lifetime", EntityCount: 7},
			},
		},
		Scheduler: &ecs.SchedulerStats{
			Systems: []ecs.SystemStats{{Name: "LifetimeSystem"}},
		},
		Spawned: 12,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Target Entities:** 10")
	assert.Contains(t, out, "- LifetimeSystem: avg 0s")
	assert.Contains(t, out, "- main.Lifetime (cid 0): 7")
	assert.Contains(t, out, "**Payloads Not Released:** 0")
}

func TestSimulationReleasesPayloads(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry, ecs.WithMaxEntities(65))

	rng := newTestRand()
	pool := &payloadPool{size: 8}
	spawner := &SpawnSystem{target: 64, maxLifetime: 5, rng: rng, pool: pool}
	lifetime := &LifetimeSystem{}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(lifetime)
	scheduler.Register(&ChurnSystem{rng: rng, pool: pool})
	scheduler.Register(spawner)

	for range 50 {
		scheduler.Once(0.016)
	}

	assert.Equal(t, 64, storage.Count())
	assert.Greater(t, lifetime.expired, int64(0))
	assert.Zero(t, spawner.failed)

	storage.Dealloc()
	assert.Zero(t, pool.outstanding)
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}
