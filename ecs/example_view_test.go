package ecs_test

import (
	"fmt"

	"github.com/plus3/entitysystem/ecs"
)

// ExampleView reads several components of each matching entity at once.
// Named fields tagged `ecs:"optional"` may be nil.
func ExampleView() {
	m := ecs.NewEntityManager(nil)

	hero := m.CreateEntity()
	ecs.Add(m, hero, &Position{X: 1, Y: 1})
	ecs.Add(m, hero, &Name{Value: "hero"})

	rock := m.CreateEntity()
	ecs.Add(m, rock, &Position{X: 5, Y: 5})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](m)

	for e, item := range view.Iter() {
		name := "unnamed"
		if item.Name != nil {
			name = item.Name.Value
		}
		fmt.Printf("%s %s at (%.0f, %.0f)\n", e, name, item.Position.X, item.Position.Y)
	}

	// Output:
	// Entity(1) hero at (1, 1)
	// Entity(2) unnamed at (5, 5)
}
