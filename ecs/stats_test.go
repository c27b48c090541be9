package ecs_test

import (
	"testing"

	"github.com/plus3/lxecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStatsEmpty(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.EntityCount)
	assert.Equal(t, 8, stats.TableCount)
	assert.Equal(t, 0, stats.ComponentCount)
	require.Len(t, stats.Tables, 8)
	for _, table := range stats.Tables {
		assert.Zero(t, table.Components)
		assert.Zero(t, table.Blocks)
	}
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	for i := 0; i < 100; i++ {
		storage.Spawn(Position{X: float32(i)}, Velocity{})
	}
	for i := 0; i < 10; i++ {
		storage.Spawn(Name{Value: "n"})
	}
	storage.CreateEntity()

	stats := storage.CollectStats()
	assert.Equal(t, 111, stats.EntityCount)
	assert.Equal(t, 210, stats.ComponentCount)

	byName := make(map[string]ecs.TableStats)
	var names []string
	for _, table := range stats.Tables {
		byName[table.Name] = table
		names = append(names, table.Name)
	}

	assert.IsNonDecreasing(t, names)
	assert.Equal(t, ecs.TableStats{Name: "ecs_test.Position", Components: 100, Blocks: 2}, byName["ecs_test.Position"])
	assert.Equal(t, ecs.TableStats{Name: "ecs_test.Name", Components: 10, Blocks: 1}, byName["ecs_test.Name"])
	assert.Equal(t, 0, byName["ecs_test.Health"].Components)
}
