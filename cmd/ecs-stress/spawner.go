package main

import (
	"math/rand/v2"

	"github.com/plus3/entitysystem/ecs"
)

// Spawner builds the component sets for new stress-test entities.
type Spawner struct {
	rng *rand.Rand
	sim SimulationConfig
	tag TagsConfig
}

func NewSpawner(cfg *Config) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewPCG(cfg.Simulation.Seed, cfg.Simulation.Seed^0x9e3779b97f4a7c15)),
		sim: cfg.Simulation,
		tag: cfg.Tags,
	}
}

// Components returns a fresh Position, Velocity, Lifetime and TagsComponent.
func (s *Spawner) Components() []ecs.Component {
	speed := s.sim.MaxSpeed
	lifetime := s.sim.MinLifetime + s.rng.Float64()*(s.sim.MaxLifetime-s.sim.MinLifetime)

	tags := ecs.NewTagsComponent()
	for range s.rng.IntN(s.tag.MaxPerEntity) + 1 {
		tags.Add(s.tag.Pool[s.rng.IntN(len(s.tag.Pool))])
	}

	return []ecs.Component{
		&Position{X: s.rng.Float64() * 1000, Y: s.rng.Float64() * 1000},
		&Velocity{DX: (s.rng.Float64()*2 - 1) * speed, DY: (s.rng.Float64()*2 - 1) * speed},
		&Lifetime{Remaining: lifetime},
		tags,
	}
}

// Spawn creates an entity immediately.
func (s *Spawner) Spawn(m *ecs.EntityManager) ecs.Entity {
	e := m.CreateEntity()
	for _, c := range s.Components() {
		m.AddComponent(e, c)
	}
	return e
}
