package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	Allocated          bool
	Capacity           int
	TotalEntityCount   int
	ComponentTypeCount int
	ComponentBreakdown []ComponentTypeStats
}

// ComponentTypeStats describes the index of one component type.
type ComponentTypeStats struct {
	Cid         Cid
	Name        string
	EntityCount int
}

// CollectStats gathers entity and per-type counts.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		Allocated:          s.Allocated(),
		Capacity:           s.cfg.MaxEntities,
		TotalEntityCount:   s.Count(),
		ComponentTypeCount: s.registry.NumCids(),
		ComponentBreakdown: make([]ComponentTypeStats, 0, s.registry.NumCids()),
	}

	for i := 0; i < s.registry.NumCids(); i++ {
		cid := Cid(i)
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentTypeStats{
			Cid:         cid,
			Name:        s.registry.Name(cid),
			EntityCount: s.CountOf(cid),
		})
	}
	return stats
}
