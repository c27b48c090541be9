package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/lxecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X, Y float32
}

type Label struct {
	Text    string
	Visible bool
	Layer   uint8
	Order   int16
	Owner   *Position
	private int
}

type Score int

func newStorage() (*ecs.ComponentRegistry, *ecs.Storage) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Score](registry)
	RegisterDebugUIComponents(registry)
	return registry, ecs.NewStorage(registry)
}

func TestEntityBrowserCache(t *testing.T) {
	_, storage := newStorage()

	a := storage.Spawn(Position{})
	storage.CreateEntity()
	c := storage.Spawn(Position{}, Label{Text: "c"})
	d := storage.Spawn(Score(3))

	browser := NewEntityBrowserComponent(2)
	browser.rebuildCacheIfNeeded(storage)

	require.Len(t, browser.cache.entities, 3)
	assert.Equal(t, a, browser.cache.entities[0].ID)
	assert.Equal(t, []string{"debugui.Label", "debugui.Position"}, browser.cache.entities[1].ComponentTypes)
	assert.Equal(t, 2, browser.cache.entities[1].ComponentCount)

	browser.filterText = "label"
	filtered := browser.getFilteredEntities()
	require.Len(t, filtered, 1)
	assert.Equal(t, c, filtered[0].ID)

	browser.filterText = ""
	browser.filterType = "debugui.Score"
	filtered = browser.getFilteredEntities()
	require.Len(t, filtered, 1)
	assert.Equal(t, d, filtered[0].ID)

	// a new entity invalidates the cache
	storage.Spawn(Score(4))
	browser.rebuildCacheIfNeeded(storage)
	assert.Len(t, browser.cache.entities, 4)
}

func TestEntityBrowserSortAndPaging(t *testing.T) {
	_, storage := newStorage()
	for i := 0; i < 5; i++ {
		storage.Spawn(Score(i))
	}
	storage.Spawn(Score(9), Position{})

	browser := NewEntityBrowserComponent(2)
	browser.rebuildCacheIfNeeded(storage)

	browser.cache.sortColumn = 2
	browser.cache.sortAscending = false
	browser.sortEntities()
	assert.Equal(t, ecs.Entity(5), browser.cache.entities[0].ID)
	assert.Equal(t, ecs.Entity(0), browser.cache.entities[1].ID)

	assert.Equal(t, 3, browser.totalPages(6))
	browser.currentPage = 7
	start, end := browser.pageBounds(6)
	assert.Equal(t, 4, start)
	assert.Equal(t, 6, end)
	assert.Equal(t, 2, browser.currentPage)

	_, ok := browser.SelectedEntity()
	assert.False(t, ok)
	browser.Select(0)
	e, ok := browser.SelectedEntity()
	assert.True(t, ok)
	assert.Equal(t, ecs.Entity(0), e)
}

func TestTableViewerCache(t *testing.T) {
	_, storage := newStorage()
	for i := 0; i < 70; i++ {
		storage.Spawn(Position{})
	}
	storage.Spawn(Label{})

	viewer := NewTableViewerComponent()
	viewer.rebuildCacheIfNeeded(storage)

	require.NotEmpty(t, viewer.cache.tables)
	top := viewer.cache.tables[0]
	assert.Equal(t, "debugui.Position", top.Name)
	assert.Equal(t, 70, top.Components)
	assert.Equal(t, 2, top.Blocks)

	viewer.cache.sortColumn = 0
	viewer.cache.sortAscending = true
	viewer.sortTables()
	for i := 1; i < len(viewer.cache.tables); i++ {
		assert.LessOrEqual(t, viewer.cache.tables[i-1].Name, viewer.cache.tables[i].Name)
	}
}

func TestQueryDebugger(t *testing.T) {
	registry, storage := newStorage()
	a := storage.Spawn(Position{}, Label{})
	storage.Spawn(Position{})
	storage.Spawn(Score(1))

	qd := NewQueryDebuggerComponent()
	qd.rebuildCacheIfNeeded(storage)
	assert.Equal(t, []string{"debugui.Label", "debugui.Position", "debugui.Score"}, qd.cache.componentTypes)

	qd.selectedComponentTypes["debugui.Position"] = true
	qd.selectedComponentTypes["debugui.Label"] = true
	qd.selectedComponentTypes["debugui.Missing"] = true
	types := qd.selectedTypes()
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Label](), reflect.TypeFor[Position]()}, types)
	assert.Equal(t, []ecs.Entity{a}, ecs.Select(storage, types...).Sorted())

	qd.queryText = "CONTAINS(Position) & !EXACT(Position)"
	matches, err := qd.runQuery(storage, registry)
	require.NoError(t, err)
	assert.Equal(t, []ecs.Entity{a}, matches)

	qd.queryText = "CONTAINS(Nope)"
	_, err = qd.runQuery(storage, registry)
	assert.ErrorContains(t, err, "Nope")
}

func TestSummarizeEntities(t *testing.T) {
	assert.Equal(t, "", summarizeEntities(nil, 3))
	assert.Equal(t, "1, 2", summarizeEntities([]ecs.Entity{1, 2}, 3))
	assert.Equal(t, "1, 2, ... 2 more", summarizeEntities([]ecs.Entity{1, 2, 3, 4}, 2))
}

func TestPerformanceStatsRecord(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)

	ps.record(0.004)
	avg := ps.record(0.008)
	assert.InDelta(t, 3.0, avg, 0.001)

	for i := 0; i < 4; i++ {
		avg = ps.record(0.010)
	}
	assert.InDelta(t, 10.0, avg, 0.001)

	empty := PerformanceStatsComponent{}
	assert.Zero(t, empty.record(1))
}

func TestReflectionCache(t *testing.T) {
	cache := NewReflectionCache()

	fields := cache.GetFields(reflect.TypeFor[Label]())
	require.Len(t, fields, 5)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Text", "Visible", "Layer", "Order", "Owner"}, names)

	owner := fields[4]
	assert.True(t, owner.IsPointer)
	assert.Equal(t, reflect.Struct, owner.Kind)
	assert.False(t, owner.Editable())
	assert.True(t, fields[0].Editable())

	assert.Nil(t, cache.GetFields(reflect.TypeFor[Score]()))
	assert.Equal(t, fields, cache.GetFields(reflect.TypeFor[Label]()))
}

func TestSetComponentField(t *testing.T) {
	_, storage := newStorage()
	e := storage.Spawn(Label{Text: "old"}, Position{}, Score(1))

	labelType := reflect.TypeFor[Label]()
	assert.True(t, SetComponentField(storage, e, labelType, 0, "new"))
	assert.True(t, SetComponentField(storage, e, labelType, 1, true))
	assert.True(t, SetComponentField(storage, e, labelType, 2, uint64(7)))
	assert.True(t, SetComponentField(storage, e, labelType, 3, int64(-2)))
	assert.True(t, SetComponentField(storage, e, reflect.TypeFor[Position](), 1, 2.5))

	label, _ := ecs.GetComponent[Label](storage, e)
	assert.Equal(t, "new", label.Text)
	assert.True(t, label.Visible)
	assert.Equal(t, uint8(7), label.Layer)
	assert.Equal(t, int16(-2), label.Order)

	pos, _ := ecs.GetComponent[Position](storage, e)
	assert.Equal(t, float32(2.5), pos.Y)

	assert.False(t, SetComponentField(storage, e, labelType, 0, 12))
	assert.False(t, SetComponentField(storage, e, labelType, 4, "x"))
	assert.False(t, SetComponentField(storage, e, labelType, 5, 1))
	assert.False(t, SetComponentField(storage, e, reflect.TypeFor[Score](), 0, 1))
	assert.False(t, SetComponentField(storage, storage.CreateEntity(), labelType, 0, "x"))
}
