package ecs

import "slices"

// TagsComponent is a set of string labels attached to an entity.
// Tags keep their insertion order, never contain duplicates and are compared
// with exact, case-sensitive string equality. The zero value is an empty set.
type TagsComponent struct {
	order []string
	index map[string]int
}

// NewTagsComponent creates a TagsComponent holding tags, dropping duplicates.
func NewTagsComponent(tags ...string) *TagsComponent {
	tc := &TagsComponent{}
	for _, tag := range tags {
		tc.Add(tag)
	}
	return tc
}

// Add inserts tag and reports whether it was not already present.
func (tc *TagsComponent) Add(tag string) bool {
	if tc.index == nil {
		tc.index = make(map[string]int)
	}
	if _, ok := tc.index[tag]; ok {
		return false
	}
	tc.index[tag] = len(tc.order)
	tc.order = append(tc.order, tag)
	return true
}

// Remove deletes tag and reports whether it was present.
func (tc *TagsComponent) Remove(tag string) bool {
	pos, ok := tc.index[tag]
	if !ok {
		return false
	}
	tc.order = slices.Delete(tc.order, pos, pos+1)
	delete(tc.index, tag)
	for i := pos; i < len(tc.order); i++ {
		tc.index[tc.order[i]] = i
	}
	return true
}

// Has reports whether tag is in the set.
func (tc *TagsComponent) Has(tag string) bool {
	if tc == nil {
		return false
	}
	_, ok := tc.index[tag]
	return ok
}

// Tags returns a copy of the tags in insertion order.
func (tc *TagsComponent) Tags() []string {
	if tc == nil {
		return nil
	}
	return slices.Clone(tc.order)
}

// Len returns the number of tags.
func (tc *TagsComponent) Len() int {
	if tc == nil {
		return 0
	}
	return len(tc.order)
}
