package ecs

import "fmt"

// EntityId identifies an entity within a single EntityManager.
// Ids are issued in strictly increasing order starting at 1 and are never
// reused, so 0 always means "no entity".
type EntityId uint32

// Entity is a lightweight handle pairing an EntityId with the manager that
// issued it. Entities carry no data of their own; every component lives in the
// manager. The zero Entity refers to no entity.
type Entity struct {
	id      EntityId
	manager *EntityManager
}

// Id returns the entity's identifier.
func (e Entity) Id() EntityId {
	return e.id
}

// Manager returns the manager that issued this entity, or nil for the zero Entity.
func (e Entity) Manager() *EntityManager {
	return e.manager
}

// IsZero reports whether e is the zero Entity.
func (e Entity) IsZero() bool {
	return e.id == 0 || e.manager == nil
}

// Alive reports whether the entity is still registered with its manager.
func (e Entity) Alive() bool {
	if e.IsZero() {
		return false
	}
	return e.manager.Alive(e)
}

// Tags returns the entity's TagsComponent, or nil if it has none.
func (e Entity) Tags() *TagsComponent {
	if e.manager == nil {
		return nil
	}
	return Get[TagsComponent](e.manager, e)
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d)", e.id)
}
