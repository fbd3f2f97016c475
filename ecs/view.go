package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityType = reflect.TypeFor[Entity]()

// View reads several components of an entity at once.
// The type T must be a struct whose fields are pointers to component types.
// Embedded fields are always required; named fields can be marked optional
// with the `ecs:"optional"` struct tag. A field of type Entity, if present,
// receives the entity being viewed.
type View[T any] struct {
	manager     *EntityManager
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	entityField int
}

// NewView creates a new view for the given struct type.
func NewView[T any](m *EntityManager) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		manager:     m,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
		entityField: -1,
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityType {
			if v.entityField != -1 {
				panic("View struct may hold only one Entity field")
			}
			v.entityField = int(field.Offset)
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// storages resolves the current store of every field; nil when the type was
// never registered or never stored.
func (v *View[T]) storages() []iComponentStorage {
	stores := make([]iComponentStorage, len(v.types))
	for i, t := range v.types {
		if id, ok := v.manager.registry.Lookup(t); ok {
			stores[i] = v.manager.storeAt(id)
		}
	}
	return stores
}

// Fill populates ptr with e's components.
// Returns false if e is not alive or is missing a required component;
// missing optional components are set to nil.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	if !v.manager.Alive(e) {
		return false
	}
	return v.fill(e, unsafe.Pointer(ptr), v.storages())
}

func (v *View[T]) fill(e Entity, structPtr unsafe.Pointer, stores []iComponentStorage) bool {
	for i, store := range stores {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		var component Component
		if store != nil {
			component = store.Get(e.id)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}

	if v.entityField >= 0 {
		*(*Entity)(unsafe.Add(structPtr, v.entityField)) = e
	}
	return true
}

// Get returns a populated view struct for e, or nil if e doesn't have all
// the required components.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// candidates returns the entities worth checking, taken from the smallest
// required store, or every entity when all fields are optional.
func (v *View[T]) candidates(stores []iComponentStorage) []Entity {
	var smallest iComponentStorage
	for i, store := range stores {
		if v.optional[i] {
			continue
		}
		if store == nil {
			return nil
		}
		if smallest == nil || store.Len() < smallest.Len() {
			smallest = store
		}
	}
	if smallest == nil {
		return v.manager.Entities()
	}
	return v.manager.entitiesIn(smallest)
}

// Iter yields every entity that has all required components, in ascending id
// order. Candidates are collected before the first yield, so the loop body may
// create or remove entities; entities removed mid-iteration are skipped.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		stores := v.storages()
		for _, e := range v.candidates(stores) {
			if !v.manager.Alive(e) {
				continue
			}
			var result T
			if !v.fill(e, unsafe.Pointer(&result), stores) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities the view currently matches.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// Create makes a new entity holding every non-nil component field of data.
func (v *View[T]) Create(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	components := make([]Component, 0, len(v.types))
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))

		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Create")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Interface())
	}

	e := v.manager.CreateEntity()
	for _, component := range components {
		v.manager.AddComponent(e, component)
	}
	return e
}
