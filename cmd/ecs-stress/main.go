// Command ecs-stress populates a world with random entities, runs random
// systems over it for a fixed duration and prints a timing report.
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
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/lxecs/ecs"
	"github.com/plus3/lxecs/internal/config"
	"github.com/plus3/lxecs/internal/worldlog"
)

// settings are read from LXECS_STRESS_* variables; flags override them.
type settings struct {
	Duration  int    `config:"LXECS_STRESS_SECONDS"`
	Entities  int    `config:"LXECS_STRESS_ENTITIES"`
	Systems   int    `config:"LXECS_STRESS_SYSTEMS"`
	Churn     int    `config:"LXECS_STRESS_CHURN"`
	Seed      int64  `config:"LXECS_STRESS_SEED"`
	Profile   string `config:"LXECS_STRESS_PROFILE"`
	LogLevel  string `config:"LXECS_LOG_LEVEL"`
	StatsEach uint64 `config:"LXECS_STRESS_STATS_EVERY"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, true))
		os.Exit(1)
	}
}

func run() error {
	defaults, err := config.Load(settings{
		Duration: 10,
		Entities: 10000,
		Systems:  50,
		Seed:     1,
		LogLevel: "info",
	})
	if err != nil {
		return err
	}

	duration := flag.Duration("duration", time.Duration(defaults.Duration)*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", defaults.Entities, "The initial number of entities to create.")
	systemCount := flag.Int("systems", defaults.Systems, "The number of systems to run every tick.")
	churn := flag.Int("churn", defaults.Churn, "Entities spawned through commands on every tick.")
	seed := flag.Int64("seed", defaults.Seed, "Random seed for entity and system shapes.")
	profileMode := flag.String("profile", defaults.Profile, "Write a cpu or mem profile to the working directory.")
	statsEvery := flag.Uint64("stats-every", defaults.StatsEach, "Log storage statistics every n ticks (0 disables).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	jsonReport := flag.Bool("json", false, "Print the report as JSON.")
	flag.Parse()

	level, err := zerolog.ParseLevel(defaults.LogLevel)
	if err != nil {
		return eris.Wrapf(err, "invalid log level %q", defaults.LogLevel)
	}
	logger := worldlog.NewConsole(level)

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return eris.Errorf("unknown profile mode %q", *profileMode)
	}

	logger.Info().Msg("Starting ECS stress test...")

	// 1. Setup registry, systems and world
	rng := rand.New(rand.NewSource(*seed))
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)

	systems := newStressSystems(rng, registry, *systemCount, *churn)
	statsSystem := &worldlog.StatsSystem{
		Logger: logger.CreateSystemLogger("stats"),
		Level:  zerolog.DebugLevel,
		Every:  *statsEvery,
		Shape:  ecs.Shape1[C0](),
	}
	world := ecs.NewWorld(registry, ecs.WithSystems(append(systems, statsSystem)...))
	statsSystem.Dispatcher = world.Dispatcher().Stats
	logger.LogWorld(world, zerolog.DebugLevel)

	// 2. Populate storage with initial entities
	logger.Info().Int("entities", *entityCount).Msg("Populating storage")
	for i := 0; i < *entityCount; i++ {
		world.Spawn(randomComponents(rng, 5)...)
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     len(registry.Types()),
		Systems:        *systemCount,
		Churn:          *churn,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("Running simulation")
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
			world.Step(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Storage = world.Storage().CollectStats()
	report.Finalize(world.Dispatcher().Stats(), 5)

	logger.Info().Int64("updates", totalUpdates).Msg("Simulation finished")

	// 4. Generate report to console
	if *jsonReport {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return eris.Wrap(err, "writing report")
		}
		return nil
	}
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return eris.Wrap(err, "generating report")
	}
	fmt.Println("--- End of Report ---")
	return nil
}
