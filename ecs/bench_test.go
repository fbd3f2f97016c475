package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/entitysystem/ecs"
)

func BenchmarkCreateEntity(b *testing.B) {
	m := newTestManager()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := m.CreateEntity()
		ecs.Add(m, e, &Position{X: 1.0, Y: 2.0})
		ecs.Add(m, e, &Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkRemoveEntity(b *testing.B) {
	m := newTestManager()

	entities := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		entities[i] = m.CreateEntity()
		ecs.Add(m, entities[i], &Position{X: 1.0, Y: 2.0})
		ecs.Add(m, entities[i], &Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RemoveEntity(entities[i])
	}
}

func BenchmarkGetComponent(b *testing.B) {
	m := newTestManager()
	e := m.CreateEntity()
	ecs.Add(m, e, &Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.Get[Position](m, e)
	}
}

func BenchmarkEntitiesWith(b *testing.B) {
	for _, n := range []int{100, 10000} {
		b.Run(fmt.Sprintf("entities=%d", n), func(b *testing.B) {
			m := newTestManager()
			for i := 0; i < n; i++ {
				e := m.CreateEntity()
				ecs.Add(m, e, &Position{})
				if i%4 == 0 {
					ecs.Add(m, e, &Velocity{})
				}
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = ecs.EntitiesWith[Velocity](m)
			}
		})
	}
}

func BenchmarkEntitiesWithTag(b *testing.B) {
	m := newTestManager()
	for i := 0; i < 10000; i++ {
		e := m.CreateEntity()
		if i%10 == 0 {
			ecs.Add(m, e, ecs.NewTagsComponent("enemy", "flying"))
		} else {
			ecs.Add(m, e, ecs.NewTagsComponent("enemy"))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.EntitiesWithTag("flying")
	}
}

func BenchmarkViewIter(b *testing.B) {
	m := newTestManager()
	for i := 0; i < 10000; i++ {
		e := m.CreateEntity()
		ecs.Add(m, e, &Position{})
		ecs.Add(m, e, &Velocity{DX: 1, DY: 1})
	}
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](m)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range view.Iter() {
			item.Position.X += item.Velocity.DX
		}
	}
}
