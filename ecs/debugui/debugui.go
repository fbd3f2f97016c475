// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It renders inspector windows over an EntityManager and tracks ImGui input state.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/entitysystem/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem collects every ImguiItem and defers its render function to the
// end of the frame, after all gameplay systems have run.
type ImguiSystem struct {
	ecs.BaseSystem
	InputState ImguiInputState
	commands   *ecs.Commands
}

// NewImguiSystem creates an ImguiSystem that queues renders on commands,
// normally the scheduler's command buffer.
func NewImguiSystem(m *ecs.EntityManager, commands *ecs.Commands) *ImguiSystem {
	return &ImguiSystem{
		BaseSystem: ecs.NewBaseSystem(m),
		commands:   commands,
	}
}

// Update refreshes input state and queues all ImGui render functions.
func (i *ImguiSystem) Update(dt float64) {
	io := imgui.CurrentIO()
	i.InputState.WantCaptureMouse = io.WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	m := i.Manager()
	for _, e := range ecs.EntitiesWith[ImguiItem](m) {
		if item := ecs.Get[ImguiItem](m, e); item.Render != nil {
			i.commands.Defer(item.Render)
		}
	}
}
