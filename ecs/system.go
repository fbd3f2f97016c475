package ecs

// System is a per-frame behavior. A frame driver calls Update once per frame
// with the seconds elapsed since the previous frame. Systems share the
// EntityManager they were built with and must expect entities to have been
// created, changed or removed by other systems between calls.
type System interface {
	Update(dt float64)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(dt float64)

func (f SystemFunc) Update(dt float64) {
	f(dt)
}

// BaseSystem holds the manager reference a system is constructed with.
// Embed it in concrete systems.
type BaseSystem struct {
	manager *EntityManager
}

// NewBaseSystem binds a system to m.
func NewBaseSystem(m *EntityManager) BaseSystem {
	return BaseSystem{manager: m}
}

// Manager returns the manager the system was constructed with.
func (s BaseSystem) Manager() *EntityManager {
	return s.manager
}
