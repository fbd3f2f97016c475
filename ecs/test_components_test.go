package ecs_test

import "github.com/plus3/entitysystem/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Temperature float64

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}

func newTestManager() *ecs.EntityManager {
	return ecs.NewEntityManager(newTestRegistry())
}

func ids(entities []ecs.Entity) []ecs.EntityId {
	result := make([]ecs.EntityId, len(entities))
	for i, e := range entities {
		result[i] = e.Id()
	}
	return result
}
