package ecs

import "iter"

// iComponentStorage is an interface for a type-erased, per-type component index.
type iComponentStorage interface {
	Put(id EntityId, item Component) (replaced Component)
	Delete(id EntityId) bool
	Get(id EntityId) Component
	Has(id EntityId) bool
	Len() int
	Iter() iter.Seq[EntityId]
}
