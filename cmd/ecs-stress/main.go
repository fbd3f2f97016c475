package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/entitysystem/ecs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := runCLI(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI parses args, runs the stress test and writes the report to stdout.
// Every failure is returned, so the logger and any profile are flushed by
// their deferred calls before main exits.
func runCLI(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	configPath := flags.String("config", "", "Path to a TOML config file. Defaults are used when empty.")
	duration := flags.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flags.Int("entities", 10000, "The initial number of entities to create.")
	profileMode := flags.String("profile", "", "Write a profile: cpu or mem.")
	profileDir := flags.String("profile-dir", ".", "Directory the profile is written to.")
	gcPauseMetrics := flags.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := Load(*configPath)
	if err != nil {
		return err
	}
	// Flags given on the command line win over the config file.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Simulation.Duration = *duration
		case "entities":
			cfg.Simulation.Entities = *entityCount
		}
	})

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	var mode func(*profile.Profile)
	switch *profileMode {
	case "":
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}
	if mode != nil {
		defer profile.Start(mode, profile.ProfilePath(*profileDir), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	report, err := run(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("stress test failed: %w", err)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Fprintln(stdout, "\n\n--- Stress Test Report ---")
	if err := report.Generate(stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Fprintln(stdout, "--- End of Report ---")

	log.Info("stress test complete")
	return nil
}

// run seeds a manager from cfg and drives the scheduler until the configured
// duration elapses or ctx is cancelled.
func run(ctx context.Context, cfg *Config, log *zap.Logger) (*Report, error) {
	if cfg.Simulation.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %s", cfg.Simulation.Duration)
	}

	log.Info("starting ECS stress test",
		zap.Int("entities", cfg.Simulation.Entities),
		zap.Duration("duration", cfg.Simulation.Duration),
		zap.Strings("tags", cfg.Tags.Pool))

	// 1. Setup Registry, EntityManager, and Scheduler
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Lifetime](registry)
	manager := ecs.NewEntityManager(registry, ecs.WithManagerLogger(log.Named("ecs")))
	scheduler := ecs.NewScheduler(manager,
		ecs.WithLogger(log.Named("scheduler")),
		ecs.WithSlowSystemThreshold(cfg.Simulation.SlowSystem))

	spawner := NewSpawner(cfg)
	lifetimes := NewLifetimeSystem(manager, scheduler.Commands())
	census := NewTagCensusSystem(manager, cfg.Tags.Census, cfg.Tags.CensusEvery, log.Named("census"))
	scheduler.Register(NewMovementSystem(manager))
	scheduler.Register(lifetimes)
	var respawn *RespawnSystem
	if cfg.Simulation.Respawn {
		respawn = NewRespawnSystem(manager, scheduler.Commands(), spawner, cfg.Simulation.Entities)
		scheduler.Register(respawn)
	}
	scheduler.Register(census)

	// 2. Populate the manager with initial entities
	for i := 0; i < cfg.Simulation.Entities; i++ {
		spawner.Spawn(manager)
	}
	log.Info("population complete", zap.Int("entities", manager.EntityCount()))

	// 3. Run the simulation loop
	report := &Report{
		Duration:   cfg.Simulation.Duration,
		Entities:   cfg.Simulation.Entities,
		Components: registry.Len(),
		Systems:    len(scheduler.GetStats().Systems),
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(ctx, cfg.Simulation.Duration)
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

	report.World = manager.CollectStats()
	report.Scheduler = scheduler.GetStats()
	report.Expired = lifetimes.Expired
	if respawn != nil {
		report.Respawned = respawn.Spawned
	}

	log.Info("simulation finished",
		zap.Int64("updates", totalUpdates),
		zap.Int("entities", report.World.EntityCount),
		zap.Int64("expired", report.Expired))

	return report, nil
}

func newLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
