package ecs

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
)

// Component is any data payload attached to an entity. Components are always
// stored and returned by pointer; the pointee type is the component's identity.
type Component = any

// ComponentId is a stable per-type identifier handed out by a ComponentRegistry.
type ComponentId uint32

// ComponentInfo describes a registered component type.
type ComponentInfo struct {
	Id   ComponentId
	Type reflect.Type
	Name string
}

// ErrInvalidComponent is raised when a component value or type cannot be
// stored: nil values, non-pointer values and pointer-to-pointer types.
var ErrInvalidComponent = errors.New("invalid component")

// ComponentRegistry assigns ComponentIds to component types and knows how to
// build storage for each of them. Each EntityManager owns its own registry,
// so independent managers never share ids.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentId
	infos     []ComponentInfo
	factories []func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentId),
	}
}

// RegisterComponent registers T with the registry and returns its id.
// Registering a type twice returns the existing id. Types that are not
// registered up front are registered on first use by the manager.
//
// T must be the component's value type; registering a pointer type panics
// with ErrInvalidComponent, since components are always handled as *T.
func RegisterComponent[T any](r *ComponentRegistry) ComponentId {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	checkComponentType(t)
	return r.register(t, func() iComponentStorage {
		return newGenericComponentStorage[T]()
	})
}

// ComponentIdFor returns the id registered for T, registering it if needed.
func ComponentIdFor[T any](r *ComponentRegistry) ComponentId {
	return RegisterComponent[T](r)
}

func (r *ComponentRegistry) register(t reflect.Type, factory func() iComponentStorage) ComponentId {
	id := ComponentId(len(r.infos))
	r.ids[t] = id
	r.infos = append(r.infos, ComponentInfo{Id: id, Type: t, Name: t.String()})
	r.factories = append(r.factories, factory)
	return id
}

// Lookup returns the id for t without registering it.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentId, bool) {
	t = componentElem(t)
	id, ok := r.ids[t]
	return id, ok
}

// Info returns the registration details for id.
func (r *ComponentRegistry) Info(id ComponentId) (ComponentInfo, bool) {
	if int(id) >= len(r.infos) {
		return ComponentInfo{}, false
	}
	return r.infos[id], true
}

// Components returns every registered component type ordered by name.
func (r *ComponentRegistry) Components() []ComponentInfo {
	infos := make([]ComponentInfo, len(r.infos))
	copy(infos, r.infos)
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.infos)
}

// idForValue resolves the id of a component value, registering its type via
// reflection when it was never registered through RegisterComponent.
func (r *ComponentRegistry) idForValue(component Component) ComponentId {
	if component == nil {
		panic(fmt.Errorf("%w: nil component", ErrInvalidComponent))
	}
	v := reflect.ValueOf(component)
	if v.Kind() != reflect.Ptr {
		panic(fmt.Errorf("%w: %s must be passed by pointer", ErrInvalidComponent, v.Type()))
	}
	if v.IsNil() {
		panic(fmt.Errorf("%w: nil %s", ErrInvalidComponent, v.Type()))
	}
	t := v.Type().Elem()
	if id, ok := r.ids[t]; ok {
		return id
	}
	checkComponentType(t)
	return r.register(t, func() iComponentStorage {
		return newReflectComponentStorage(t)
	})
}

// getFactory returns the storage factory for id.
func (r *ComponentRegistry) getFactory(id ComponentId) func() iComponentStorage {
	if int(id) >= len(r.factories) {
		return nil
	}
	return r.factories[id]
}

// checkComponentType rejects pointer component types. Lookups strip one
// pointer level, so a *T key could be stored but never read back.
func checkComponentType(t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		panic(fmt.Errorf("%w: %s is a pointer type", ErrInvalidComponent, t))
	}
}

// componentElem maps *T to T so callers may pass either form to lookups.
func componentElem(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

const defaultStorageCapacity = 64

// genericComponentStorage indexes components of type T by owning entity.
type genericComponentStorage[T any] struct {
	items *intmap.Map[EntityId, *T]
}

func newGenericComponentStorage[T any]() *genericComponentStorage[T] {
	return &genericComponentStorage[T]{
		items: intmap.New[EntityId, *T](defaultStorageCapacity),
	}
}

// Put stores item for id and returns the component it replaced, if any.
func (cs *genericComponentStorage[T]) Put(id EntityId, item Component) Component {
	ptr, ok := item.(*T)
	if !ok {
		panic(fmt.Errorf("%w: %T stored as %s", ErrInvalidComponent, item, reflect.TypeFor[T]()))
	}
	prev, had := cs.items.Get(id)
	cs.items.Put(id, ptr)
	if had {
		return prev
	}
	return nil
}

func (cs *genericComponentStorage[T]) Delete(id EntityId) bool {
	return cs.items.Del(id)
}

// Get returns the stored pointer as a Component, or nil.
func (cs *genericComponentStorage[T]) Get(id EntityId) Component {
	ptr, ok := cs.items.Get(id)
	if !ok {
		return nil
	}
	return ptr
}

// typed returns the stored pointer without boxing it.
func (cs *genericComponentStorage[T]) typed(id EntityId) *T {
	ptr, _ := cs.items.Get(id)
	return ptr
}

func (cs *genericComponentStorage[T]) Has(id EntityId) bool {
	return cs.items.Has(id)
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.items.Len()
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[EntityId] {
	return cs.items.Keys()
}

// reflectComponentStorage backs component types that were first seen as
// values rather than through RegisterComponent. It keeps the boxed pointer.
type reflectComponentStorage struct {
	typ   reflect.Type
	items *intmap.Map[EntityId, Component]
}

func newReflectComponentStorage(t reflect.Type) *reflectComponentStorage {
	return &reflectComponentStorage{
		typ:   t,
		items: intmap.New[EntityId, Component](defaultStorageCapacity),
	}
}

func (cs *reflectComponentStorage) Put(id EntityId, item Component) Component {
	if reflect.TypeOf(item) != reflect.PointerTo(cs.typ) {
		panic(fmt.Errorf("%w: %T stored as %s", ErrInvalidComponent, item, cs.typ))
	}
	prev, had := cs.items.Get(id)
	cs.items.Put(id, item)
	if had {
		return prev
	}
	return nil
}

func (cs *reflectComponentStorage) Delete(id EntityId) bool {
	return cs.items.Del(id)
}

func (cs *reflectComponentStorage) Get(id EntityId) Component {
	item, ok := cs.items.Get(id)
	if !ok {
		return nil
	}
	return item
}

func (cs *reflectComponentStorage) Has(id EntityId) bool {
	return cs.items.Has(id)
}

func (cs *reflectComponentStorage) Len() int {
	return cs.items.Len()
}

func (cs *reflectComponentStorage) Iter() iter.Seq[EntityId] {
	return cs.items.Keys()
}
