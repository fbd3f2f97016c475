package ecs_test

import (
	"testing"

	"github.com/plus3/entitysystem/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	m := newTestManager()
	e := m.CreateEntity()
	pos := &Position{X: 1, Y: 2}
	temp := Temperature(32)
	m.AddComponent(e, pos)
	m.AddComponent(e, &temp)

	view := ecs.NewView[struct {
		*Position
		*Temperature
	}](m)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Same(t, pos, item.Position)
	assert.Equal(t, Temperature(32), *item.Temperature)
}

func TestViewMissingComponent(t *testing.T) {
	m := newTestManager()
	e := m.CreateEntity()
	ecs.Add(m, e, &Position{X: 5, Y: 10})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](m)

	assert.Nil(t, view.Get(e))
}

func TestViewOptionalComponent(t *testing.T) {
	m := newTestManager()
	withName := m.CreateEntity()
	ecs.Add(m, withName, &Position{X: 1})
	ecs.Add(m, withName, &Name{Value: "named"})
	withoutName := m.CreateEntity()
	ecs.Add(m, withoutName, &Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](m)

	item := view.Get(withName)
	require.NotNil(t, item)
	assert.Equal(t, "named", item.Name.Value)

	item = view.Get(withoutName)
	require.NotNil(t, item)
	assert.Nil(t, item.Name)
	assert.Equal(t, float32(2), item.Position.X)
}

func TestViewEntityField(t *testing.T) {
	m := newTestManager()
	e := m.CreateEntity()
	ecs.Add(m, e, &Health{Current: 5, Max: 10})

	view := ecs.NewView[struct {
		Entity ecs.Entity
		*Health
	}](m)

	for entity, item := range view.Iter() {
		assert.Equal(t, e, entity)
		assert.Equal(t, e, item.Entity)
	}
}

func TestViewIter(t *testing.T) {
	m := newTestManager()
	var moving []ecs.EntityId
	for i := 0; i < 10; i++ {
		e := m.CreateEntity()
		ecs.Add(m, e, &Position{X: float32(i)})
		if i%2 == 0 {
			ecs.Add(m, e, &Velocity{DX: 1})
			moving = append(moving, e.Id())
		}
	}

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](m)

	var seen []ecs.EntityId
	for e, item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		seen = append(seen, e.Id())
	}

	assert.Equal(t, moving, seen)
	assert.Equal(t, float32(1), ecs.Get[Position](m, m.Entities()[0]).X)
	assert.Equal(t, float32(1), ecs.Get[Position](m, m.Entities()[1]).X)
	assert.Equal(t, 5, view.Count())
}

func TestViewIterAllowsRemoval(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 6; i++ {
		e := m.CreateEntity()
		ecs.Add(m, e, &Health{Current: i})
	}

	view := ecs.NewView[struct{ *Health }](m)

	visited := 0
	for e := range view.Iter() {
		visited++
		next, ok := m.EntityById(e.Id() + 1)
		if ok {
			m.RemoveEntity(next)
		}
	}

	assert.Equal(t, 3, visited)
	assert.Equal(t, 3, m.EntityCount())
}

func TestViewIterEarlyExit(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 5; i++ {
		e := m.CreateEntity()
		score := Score(i)
		ecs.Add(m, e, &score)
	}

	view := ecs.NewView[struct{ *Score }](m)

	count := 0
	for range view.Iter() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestViewUnregisteredType(t *testing.T) {
	m := newTestManager()
	e := m.CreateEntity()
	ecs.Add(m, e, &Position{})

	view := ecs.NewView[struct{ *Temperature }](m)

	assert.Nil(t, view.Get(e))
	assert.Equal(t, 0, view.Count())
}

func TestViewAllOptionalVisitsEveryEntity(t *testing.T) {
	m := newTestManager()
	a := m.CreateEntity()
	b := m.CreateEntity()
	ecs.Add(m, b, &Name{Value: "b"})

	view := ecs.NewView[struct {
		Name *Name `ecs:"optional"`
	}](m)

	var names []string
	for e, item := range view.Iter() {
		if item.Name == nil {
			assert.Equal(t, a, e)
			names = append(names, "")
			continue
		}
		names = append(names, item.Name.Value)
	}
	assert.Equal(t, []string{"", "b"}, names)
}

func TestViewCreate(t *testing.T) {
	m := newTestManager()

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](m)

	e := view.Create(struct {
		*Position
		Name *Name `ecs:"optional"`
	}{Position: &Position{X: 7}})

	assert.Equal(t, float32(7), ecs.Get[Position](m, e).X)
	assert.Nil(t, ecs.Get[Name](m, e))

	assert.Panics(t, func() {
		view.Create(struct {
			*Position
			Name *Name `ecs:"optional"`
		}{})
	})
}

func TestNewViewRejectsBadTypes(t *testing.T) {
	m := newTestManager()

	assert.Panics(t, func() { ecs.NewView[Position](m) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](m) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](m)
	})
}
