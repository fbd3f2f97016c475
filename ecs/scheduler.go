package ecs

import (
	"context"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler is a frame driver: it runs registered systems one after another,
// in registration order, then applies the frame's deferred commands.
type Scheduler struct {
	manager     *EntityManager
	commands    *Commands
	systems     []System
	systemStats []*systemStatsInternal
	frames      int64
	slow        time.Duration
	log         *zap.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the scheduler's logger.
func WithLogger(log *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSlowSystemThreshold logs a warning whenever a single system update
// takes longer than d. Zero disables the check.
func WithSlowSystemThreshold(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.slow = d
	}
}

// NewScheduler creates a new scheduler driving systems against m.
func NewScheduler(m *EntityManager, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		manager:  m,
		commands: NewCommands(),
		systems:  make([]System, 0),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Manager returns the manager the scheduler drives.
func (s *Scheduler) Manager() *EntityManager {
	return s.manager
}

// Commands returns the buffer flushed at the end of every frame.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Register appends a system to the frame.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	name := systemName(system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
	s.log.Debug("system registered", zap.String("system", name), zap.Int("position", len(s.systems)-1))
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	for i, system := range s.systems {
		start := time.Now()
		system.Update(dt)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
		if s.slow > 0 && duration > s.slow {
			s.log.Warn("slow system",
				zap.String("system", stats.name),
				zap.Duration("duration", duration),
				zap.Duration("threshold", s.slow))
		}
	}

	s.commands.Flush(s.manager)
	s.frames++
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled, then returns the context's error.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("scheduler started",
		zap.Int("systems", len(s.systems)),
		zap.Duration("interval", interval))

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped", zap.Int64("frames", s.frames))
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
