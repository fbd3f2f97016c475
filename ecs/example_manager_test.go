package ecs_test

import (
	"fmt"

	"github.com/plus3/entitysystem/ecs"
)

// ExampleEntityManager demonstrates the basic API for managing entities and
// components. The manager owns every component; entities are plain handles.
func ExampleEntityManager() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	m := ecs.NewEntityManager(registry)

	player := m.CreateEntity()
	ecs.Add(m, player, &Position{X: 10, Y: 20})
	ecs.Add(m, player, &Health{Current: 100, Max: 100})

	pos := ecs.Get[Position](m, player)
	fmt.Printf("Player %d spawned at (%.0f, %.0f)\n", player.Id(), pos.X, pos.Y)

	pos.X = 15
	pos.Y = 25
	pos = ecs.Get[Position](m, player)
	fmt.Printf("Player moved to (%.0f, %.0f)\n", pos.X, pos.Y)

	m.RemoveEntity(player)
	fmt.Printf("Player alive: %v, position: %v\n", player.Alive(), ecs.Get[Position](m, player))

	// Output:
	// Player 1 spawned at (10, 20)
	// Player moved to (15, 25)
	// Player alive: false, position: <nil>
}

// ExampleEntityManager_EntitiesWithTag groups entities with string labels and
// queries them by label.
func ExampleEntityManager_EntitiesWithTag() {
	m := ecs.NewEntityManager(nil)

	bat := m.CreateEntity()
	m.AddComponent(bat, ecs.NewTagsComponent("enemy", "flying"))
	rat := m.CreateEntity()
	m.AddComponent(rat, ecs.NewTagsComponent("enemy"))

	fmt.Println("enemies:", m.EntitiesWithTag("enemy"))
	fmt.Println("flying:", m.EntitiesWithTag("flying"))

	m.RemoveEntity(bat)
	fmt.Println("flying after removal:", m.EntitiesWithTag("flying"))

	// Output:
	// enemies: [Entity(1) Entity(2)]
	// flying: [Entity(1)]
	// flying after removal: []
}

// ExampleEntityManager_AddComponent shows that attaching a second component of
// the same type replaces the first.
func ExampleEntityManager_AddComponent() {
	m := ecs.NewEntityManager(nil)
	e := m.CreateEntity()

	m.AddComponent(e, &Name{Value: "first"})
	m.AddComponent(e, &Name{Value: "second"})

	fmt.Println(ecs.Get[Name](m, e).Value)
	fmt.Println(m.ComponentNames(e))

	// Output:
	// second
	// [ecs_test.Name]
}
