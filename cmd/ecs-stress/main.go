package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/eidstore/ecs"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 4000, "The number of live entities to maintain.")
	maxLifetime := flag.Int("max-lifetime", 120, "The maximum lifetime of an entity in ticks.")
	payloadSize := flag.Int("payload-size", 256, "The size in bytes of each payload component.")
	configPath := flag.String("config", "", "Optional TOML or YAML storage configuration.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	seed := flag.Int64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := ecs.DefaultConfig()
	cfg.MaxEntities = *entityCount + 1
	if *configPath != "" {
		loaded, err := ecs.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log, err := ecs.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	log.Info("starting ECS stress test",
		zap.Duration("duration", *duration),
		zap.Int("entities", *entityCount),
		zap.Int("max_entities", cfg.MaxEntities))

	// 1. Setup Registry, Storage, and Scheduler
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry, ecs.WithConfig(cfg), ecs.WithLogger(log))

	rng := rand.New(rand.NewSource(*seed))
	pool := &payloadPool{size: *payloadSize}

	lifetime := &LifetimeSystem{}
	spawner := &SpawnSystem{
		target:      *entityCount,
		maxLifetime: *maxLifetime,
		rng:         rng,
		pool:        pool,
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(lifetime)
	scheduler.Register(&ChurnSystem{rng: rng, pool: pool})
	scheduler.Register(spawner)

	// 2. Populate Storage with initial entities
	for i := 0; i < *entityCount; i++ {
		ecs.Spawn(storage, randomComponents(rng, pool, *maxLifetime)...)
	}
	log.Info("population complete", zap.Int("live", storage.Count()))

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Capacity:       storage.Capacity(),
		Systems:        scheduler.GetStats().SystemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Storage = storage.CollectStats()
	report.Scheduler = scheduler.GetStats()
	report.Spawned = spawner.spawned
	report.SpawnFailures = spawner.failed
	report.Expired = lifetime.expired

	storage.Dealloc()
	report.LeakedPayloads = pool.outstanding

	log.Info("simulation finished", zap.Int64("updates", totalUpdates))

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")

	if report.LeakedPayloads != 0 {
		log.Error("payloads were not released", zap.Int("outstanding", report.LeakedPayloads))
	}
}
