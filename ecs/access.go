package ecs

import (
	"fmt"
	"reflect"
)

// Add attaches component to e, replacing any existing T. See AddComponent.
func Add[T any](m *EntityManager, e Entity, component *T) {
	if component == nil {
		panic(fmt.Errorf("%w: nil %s", ErrInvalidComponent, reflect.TypeFor[T]()))
	}
	m.attach(e, RegisterComponent[T](m.registry), component)
}

// Get returns e's T component, or nil if e is unknown or has none.
func Get[T any](m *EntityManager, e Entity) *T {
	if e.manager != m {
		return nil
	}
	id, ok := m.registry.Lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	switch store := m.storeAt(id).(type) {
	case nil:
		return nil
	case *genericComponentStorage[T]:
		return store.typed(e.id)
	default:
		component, _ := store.Get(e.id).(*T)
		return component
	}
}

// Has reports whether e holds a T component.
func Has[T any](m *EntityManager, e Entity) bool {
	return m.HasComponent(e, reflect.TypeFor[T]())
}

// Remove detaches e's T component and reports whether one was present.
func Remove[T any](m *EntityManager, e Entity) bool {
	return m.RemoveComponent(e, reflect.TypeFor[T]())
}

// EntitiesWith returns every live entity holding a T component in ascending id order.
func EntitiesWith[T any](m *EntityManager) []Entity {
	return m.EntitiesWithComponent(reflect.TypeFor[T]())
}

// ComponentReader is the read side of an EntityManager.
type ComponentReader interface {
	GetComponent(Entity, reflect.Type) Component
}

// ReadComponent fetches a T through any ComponentReader, returning nil when absent.
func ReadComponent[T any](reader ComponentReader, e Entity) *T {
	component, _ := reader.GetComponent(e, reflect.TypeFor[T]()).(*T)
	return component
}
