package ecs

import "sort"

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	EntityCount    int
	TableCount     int
	ComponentCount int
	Tables         []TableStats
}

// TableStats describes one component table.
type TableStats struct {
	Name       string
	Components int
	Blocks     int
}

// CollectStats walks every table of the storage. Tables are sorted by type name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount: s.EntityCount(),
		TableCount:  len(s.types),
		Tables:      make([]TableStats, 0, len(s.types)),
	}

	for _, typ := range s.types {
		n := s.tables[typ].Len()
		stats.ComponentCount += n
		stats.Tables = append(stats.Tables, TableStats{
			Name:       typ.String(),
			Components: n,
			Blocks:     (n + genericBlockSize - 1) / genericBlockSize,
		})
	}

	sort.Slice(stats.Tables, func(i, j int) bool {
		return stats.Tables[i].Name < stats.Tables[j].Name
	})

	return stats
}
