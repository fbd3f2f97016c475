package ecs

import "sort"

// Stats is a point-in-time summary of an EntityManager.
type Stats struct {
	EntityCount        int
	LastEntityId       EntityId
	ComponentTypeCount int
	ComponentBreakdown []ComponentStats
	TagBreakdown       []TagStats
}

// ComponentStats counts the live components of one type.
type ComponentStats struct {
	Id    ComponentId
	Name  string
	Count int
}

// TagStats counts the live entities carrying one tag.
type TagStats struct {
	Tag   string
	Count int
}

// CollectStats walks the manager and summarizes it. Component types that were
// registered but have no live instance are reported with a zero count.
func (m *EntityManager) CollectStats() *Stats {
	stats := &Stats{
		EntityCount:        m.entities.Len(),
		LastEntityId:       m.lastId,
		ComponentTypeCount: m.registry.Len(),
	}

	for _, info := range m.registry.Components() {
		count := 0
		if store := m.storeAt(info.Id); store != nil {
			count = store.Len()
		}
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Id:    info.Id,
			Name:  info.Name,
			Count: count,
		})
	}

	tagged := make(map[string]int)
	if store := m.tagStore(); store != nil {
		for id := range store.Iter() {
			tags, _ := store.Get(id).(*TagsComponent)
			for _, tag := range tags.Tags() {
				tagged[tag]++
			}
		}
	}
	for tag, count := range tagged {
		stats.TagBreakdown = append(stats.TagBreakdown, TagStats{Tag: tag, Count: count})
	}
	sort.Slice(stats.TagBreakdown, func(i, j int) bool {
		a, b := stats.TagBreakdown[i], stats.TagBreakdown[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Tag < b.Tag
	})

	return stats
}
