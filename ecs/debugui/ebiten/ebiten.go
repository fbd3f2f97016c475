// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/plus3/entitysystem/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// AttachBackend stores backend on a fresh entity tagged "imgui-backend" so
// systems can find it with EntitiesWithTag.
func AttachBackend(m *ecs.EntityManager, backend *ebitenbackend.EbitenBackend) ecs.Entity {
	e := m.CreateEntity()
	ecs.Add(m, e, &ImguiBackend{EbitenBackend: backend})
	m.AddComponent(e, ecs.NewTagsComponent("imgui-backend"))
	return e
}

// Backend returns the backend attached by AttachBackend, or nil.
func Backend(m *ecs.EntityManager) *ImguiBackend {
	for _, e := range m.EntitiesWithTag("imgui-backend") {
		if b := ecs.Get[ImguiBackend](m, e); b != nil {
			return b
		}
	}
	return nil
}
