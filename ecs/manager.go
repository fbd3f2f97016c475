package ecs

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

var (
	// ErrStaleEntity is raised when a mutating call receives an entity that is
	// no longer (or was never) registered with the manager.
	ErrStaleEntity = errors.New("stale entity")
	// ErrForeignEntity is raised when an entity issued by one manager is
	// handed to another.
	ErrForeignEntity = errors.New("entity belongs to another manager")
)

// entityRecord lists the component types attached to one entity so removal
// can purge every type index without scanning all of them.
type entityRecord struct {
	entity     Entity
	components []ComponentId
}

// EntityManager owns every entity and component and answers all queries.
//
// An EntityManager is not safe for concurrent use; systems are expected to run
// one after another on a single goroutine. Slices returned by query methods are
// fresh snapshots, so they stay valid (but may go stale) across later mutations.
type EntityManager struct {
	registry *ComponentRegistry
	entities *intmap.Map[EntityId, *entityRecord]
	stores   []iComponentStorage
	lastId   EntityId
	log      *zap.Logger
}

// ManagerOption configures an EntityManager.
type ManagerOption func(*EntityManager)

// WithManagerLogger sets the logger used for debug output.
func WithManagerLogger(log *zap.Logger) ManagerOption {
	return func(m *EntityManager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewEntityManager creates an empty manager. A nil registry gets a fresh one.
func NewEntityManager(registry *ComponentRegistry, opts ...ManagerOption) *EntityManager {
	if registry == nil {
		registry = NewComponentRegistry()
	}
	m := &EntityManager{
		registry: registry,
		entities: intmap.New[EntityId, *entityRecord](256),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	RegisterComponent[TagsComponent](registry)
	return m
}

// Registry returns the manager's component registry.
func (m *EntityManager) Registry() *ComponentRegistry {
	return m.registry
}

// GenerateEntityId returns an id strictly greater than any previously issued.
func (m *EntityManager) GenerateEntityId() EntityId {
	if m.lastId == math.MaxUint32 {
		panic("entity id space exhausted")
	}
	m.lastId++
	return m.lastId
}

// CreateEntity registers a new entity without components.
func (m *EntityManager) CreateEntity() Entity {
	e := Entity{id: m.GenerateEntityId(), manager: m}
	m.entities.Put(e.id, &entityRecord{entity: e})
	return e
}

// EntityById returns the live entity with the given id.
func (m *EntityManager) EntityById(id EntityId) (Entity, bool) {
	rec, ok := m.entities.Get(id)
	if !ok {
		return Entity{}, false
	}
	return rec.entity, true
}

// Alive reports whether e is registered with this manager.
func (m *EntityManager) Alive(e Entity) bool {
	if e.manager != m {
		return false
	}
	return m.entities.Has(e.id)
}

// EntityCount returns the number of live entities.
func (m *EntityManager) EntityCount() int {
	return m.entities.Len()
}

// Entities returns every live entity in ascending id order.
func (m *EntityManager) Entities() []Entity {
	result := make([]Entity, 0, m.entities.Len())
	for _, rec := range m.entities.All() {
		result = append(result, rec.entity)
	}
	sortEntities(result)
	return result
}

// AddComponent attaches component to e. The component must be a non-nil
// pointer; its pointee type identifies it. If e already holds a component of
// the same type, the previous one is replaced and discarded.
//
// Attaching to a removed entity panics with ErrStaleEntity.
func (m *EntityManager) AddComponent(e Entity, component Component) {
	id := m.registry.idForValue(component)
	m.attach(e, id, component)
}

func (m *EntityManager) attach(e Entity, id ComponentId, component Component) {
	rec := m.mustRecord(e)
	store := m.storeFor(id)
	if prev := store.Put(e.id, component); prev != nil {
		m.log.Debug("component replaced",
			zap.Uint32("entity", uint32(e.id)),
			zap.String("component", m.componentName(id)))
		return
	}
	rec.components = append(rec.components, id)
}

// GetComponent returns e's component of type t (T or *T), or nil when the
// entity is unknown or has no such component.
func (m *EntityManager) GetComponent(e Entity, t reflect.Type) Component {
	store := m.lookupStore(e, t)
	if store == nil {
		return nil
	}
	return store.Get(e.id)
}

// HasComponent reports whether e holds a component of type t.
func (m *EntityManager) HasComponent(e Entity, t reflect.Type) bool {
	store := m.lookupStore(e, t)
	return store != nil && store.Has(e.id)
}

// RemoveComponent detaches e's component of type t and reports whether one
// was present.
func (m *EntityManager) RemoveComponent(e Entity, t reflect.Type) bool {
	m.checkOwner(e)
	id, ok := m.registry.Lookup(t)
	if !ok {
		return false
	}
	return m.detach(e, id)
}

func (m *EntityManager) detach(e Entity, id ComponentId) bool {
	rec, ok := m.entities.Get(e.id)
	if !ok {
		return false
	}
	store := m.storeAt(id)
	if store == nil || !store.Delete(e.id) {
		return false
	}
	if i := slices.Index(rec.components, id); i >= 0 {
		rec.components = slices.Delete(rec.components, i, i+1)
	}
	return true
}

// RemoveEntity unregisters e and drops every component attached to it.
// Removing an unknown or already removed entity does nothing.
func (m *EntityManager) RemoveEntity(e Entity) {
	if e.IsZero() {
		return
	}
	m.checkOwner(e)
	rec, ok := m.entities.Get(e.id)
	if !ok {
		return
	}
	for _, id := range rec.components {
		m.stores[id].Delete(e.id)
	}
	rec.components = nil
	m.entities.Del(e.id)
}

// EntitiesWithComponent returns every live entity holding a component of type
// t (T or *T), in ascending id order.
func (m *EntityManager) EntitiesWithComponent(t reflect.Type) []Entity {
	id, ok := m.registry.Lookup(t)
	if !ok {
		return []Entity{}
	}
	return m.entitiesIn(m.storeAt(id))
}

// EntitiesWithTag returns every live entity whose TagsComponent contains tag,
// in ascending id order. Matching is exact and case-sensitive.
func (m *EntityManager) EntitiesWithTag(tag string) []Entity {
	result := []Entity{}
	store := m.tagStore()
	if store == nil {
		return result
	}
	for id := range store.Iter() {
		if tags, _ := store.Get(id).(*TagsComponent); tags.Has(tag) {
			result = append(result, Entity{id: id, manager: m})
		}
	}
	sortEntities(result)
	return result
}

func (m *EntityManager) entitiesIn(store iComponentStorage) []Entity {
	if store == nil {
		return []Entity{}
	}
	result := make([]Entity, 0, store.Len())
	for id := range store.Iter() {
		result = append(result, Entity{id: id, manager: m})
	}
	sortEntities(result)
	return result
}

// componentIds returns a copy of the component ids attached to e.
func (m *EntityManager) componentIds(e Entity) []ComponentId {
	if e.manager != m {
		return nil
	}
	rec, ok := m.entities.Get(e.id)
	if !ok {
		return nil
	}
	return slices.Clone(rec.components)
}

// ComponentNames returns the type names of e's components, sorted.
func (m *EntityManager) ComponentNames(e Entity) []string {
	ids := m.componentIds(e)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, m.componentName(id))
	}
	slices.Sort(names)
	return names
}

func (m *EntityManager) tagStore() iComponentStorage {
	id, ok := m.registry.Lookup(reflect.TypeFor[TagsComponent]())
	if !ok {
		return nil
	}
	return m.storeAt(id)
}

func (m *EntityManager) lookupStore(e Entity, t reflect.Type) iComponentStorage {
	if e.manager != m {
		return nil
	}
	id, ok := m.registry.Lookup(t)
	if !ok {
		return nil
	}
	return m.storeAt(id)
}

func (m *EntityManager) storeAt(id ComponentId) iComponentStorage {
	if int(id) >= len(m.stores) {
		return nil
	}
	return m.stores[id]
}

func (m *EntityManager) storeFor(id ComponentId) iComponentStorage {
	if store := m.storeAt(id); store != nil {
		return store
	}
	if int(id) >= len(m.stores) {
		m.stores = append(m.stores, make([]iComponentStorage, int(id)+1-len(m.stores))...)
	}
	factory := m.registry.getFactory(id)
	if factory == nil {
		panic(fmt.Sprintf("component id %d not registered", id))
	}
	m.stores[id] = factory()
	return m.stores[id]
}

func (m *EntityManager) componentName(id ComponentId) string {
	if info, ok := m.registry.Info(id); ok {
		return info.Name
	}
	return fmt.Sprintf("component#%d", id)
}

func (m *EntityManager) checkOwner(e Entity) {
	if e.manager != nil && e.manager != m {
		panic(fmt.Errorf("%w: %s", ErrForeignEntity, e))
	}
}

func (m *EntityManager) mustRecord(e Entity) *entityRecord {
	m.checkOwner(e)
	rec, ok := m.entities.Get(e.id)
	if !ok || e.manager == nil {
		panic(fmt.Errorf("%w: %s is not registered", ErrStaleEntity, e))
	}
	return rec
}

func sortEntities(entities []Entity) {
	slices.SortFunc(entities, func(a, b Entity) int {
		return cmp.Compare(a.id, b.id)
	})
}
