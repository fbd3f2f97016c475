package main

import (
	"github.com/plus3/entitysystem/ecs"
	"go.uber.org/zap"
)

type MovementSystem struct {
	ecs.BaseSystem
	Entities *ecs.View[struct {
		*Position
		*Velocity
	}]
}

func NewMovementSystem(m *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{
		BaseSystem: ecs.NewBaseSystem(m),
		Entities: ecs.NewView[struct {
			*Position
			*Velocity
		}](m),
	}
}

func (s *MovementSystem) Update(dt float64) {
	for _, e := range s.Entities.Iter() {
		e.Position.X += e.Velocity.DX * dt
		e.Position.Y += e.Velocity.DY * dt
	}
}

// LifetimeSystem ages every entity with a Lifetime and queues expired ones
// for removal at the end of the frame.
type LifetimeSystem struct {
	ecs.BaseSystem
	commands *ecs.Commands
	Expired  int64
}

func NewLifetimeSystem(m *ecs.EntityManager, commands *ecs.Commands) *LifetimeSystem {
	return &LifetimeSystem{BaseSystem: ecs.NewBaseSystem(m), commands: commands}
}

func (s *LifetimeSystem) Update(dt float64) {
	m := s.Manager()
	for _, e := range ecs.EntitiesWith[Lifetime](m) {
		lifetime := ecs.Get[Lifetime](m, e)
		lifetime.Remaining -= dt
		if lifetime.Remaining <= 0 {
			s.commands.Remove(e)
			s.Expired++
		}
	}
}

// RespawnSystem keeps the number of entities with a Lifetime at target.
type RespawnSystem struct {
	ecs.BaseSystem
	commands *ecs.Commands
	spawner  *Spawner
	target   int
	Spawned  int64
}

func NewRespawnSystem(m *ecs.EntityManager, commands *ecs.Commands, spawner *Spawner, target int) *RespawnSystem {
	return &RespawnSystem{
		BaseSystem: ecs.NewBaseSystem(m),
		commands:   commands,
		spawner:    spawner,
		target:     target,
	}
}

func (s *RespawnSystem) Update(dt float64) {
	m := s.Manager()
	alive := 0
	for _, e := range ecs.EntitiesWith[Lifetime](m) {
		if ecs.Get[Lifetime](m, e).Remaining > 0 {
			alive++
		}
	}
	for i := alive; i < s.target; i++ {
		s.commands.Create(s.spawner.Components()...)
		s.Spawned++
	}
}

// TagCensusSystem counts the entities carrying each watched tag every
// interval frames.
type TagCensusSystem struct {
	ecs.BaseSystem
	tags     []string
	interval int
	frame    int
	log      *zap.Logger
	Counts   map[string]int
}

func NewTagCensusSystem(m *ecs.EntityManager, tags []string, interval int, log *zap.Logger) *TagCensusSystem {
	return &TagCensusSystem{
		BaseSystem: ecs.NewBaseSystem(m),
		tags:       tags,
		interval:   max(interval, 1),
		log:        log,
		Counts:     make(map[string]int, len(tags)),
	}
}

func (s *TagCensusSystem) Update(dt float64) {
	s.frame++
	if s.frame%s.interval != 0 {
		return
	}
	fields := make([]zap.Field, 0, len(s.tags))
	for _, tag := range s.tags {
		n := len(s.Manager().EntitiesWithTag(tag))
		s.Counts[tag] = n
		fields = append(fields, zap.Int(tag, n))
	}
	s.log.Debug("tag census", fields...)
}
