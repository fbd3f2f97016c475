package debugui

import "github.com/plus3/entitysystem/ecs"

// SpawnDebugUI creates one entity per inspector window. Each entity carries
// the window state and an ImguiItem that renders it against m.
func SpawnDebugUI(m *ecs.EntityManager) {
	browser := NewEntityBrowserComponent(100)
	spawnWindow(m, &browser, func() { browser.Render(m) })

	tagQuery := NewTagQueryComponent()
	spawnWindow(m, &tagQuery, func() { tagQuery.Render(m) })

	perf := NewPerformanceStatsComponent(120)
	timer := NewFrameTimer()
	spawnWindow(m, &perf, func() { perf.Render(m, timer.GetDeltaTime()) })
}

func spawnWindow(m *ecs.EntityManager, window ecs.Component, render func()) ecs.Entity {
	e := m.CreateEntity()
	m.AddComponent(e, window)
	m.AddComponent(e, &ImguiItem{Render: render})
	m.AddComponent(e, ecs.NewTagsComponent("debugui"))
	return e
}

// RegisterDebugUIComponents registers the package's component types with registry.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[TagQueryComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
}
