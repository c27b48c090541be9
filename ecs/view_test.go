package ecs_test

import (
	"testing"

	"github.com/plus3/lxecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	full := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
	partial := storage.Spawn(Position{X: 5})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	item := view.Get(full)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(4), item.Velocity.DY)

	assert.Nil(t, view.Get(partial))
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	e := storage.Spawn(Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	for _, item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	pos, _ := ecs.GetComponent[Position](storage, e)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withHealth := storage.Spawn(Position{X: 1}, Health{Current: 10, Max: 10})
	without := storage.Spawn(Position{X: 2})
	storage.Spawn(Health{Current: 5})

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	assert.Equal(t, ecs.Shape1[Position](), view.Types())
	assert.Equal(t, []ecs.Entity{withHealth, without}, view.WorkingSet().Sorted())

	item := view.Get(withHealth)
	require.NotNil(t, item)
	require.NotNil(t, item.Health)
	assert.Equal(t, 10, item.Health.Current)

	item = view.Get(without)
	require.NotNil(t, item)
	assert.Nil(t, item.Health)
}

func TestViewEntityField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Name{Value: "a"})
	b := storage.Spawn(Name{Value: "b"}, Position{})

	view := ecs.NewView[struct {
		Id ecs.Entity
		*Name
		*Position
	}](storage)

	count := 0
	for e, item := range view.Iter() {
		count++
		assert.Equal(t, b, e)
		assert.Equal(t, b, item.Id)
		assert.Equal(t, "b", item.Name.Value)
	}
	assert.Equal(t, 1, count)
}

func TestViewIterStopsEarly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 10; i++ {
		storage.Spawn(Score(i))
	}

	view := ecs.NewView[struct{ *Score }](storage)

	count := 0
	for range view.Values() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	e := view.Spawn(struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}{Position: &Position{X: 9}})

	pos, ok := ecs.GetComponent[Position](storage, e)
	require.True(t, ok)
	assert.Equal(t, float32(9), pos.X)
	assert.False(t, ecs.HasComponent[Health](storage, e))

	assert.PanicsWithValue(t, "required component is nil in View.Spawn", func() {
		view.Spawn(struct {
			Position *Position
			Health   *Health `ecs:"optional"`
		}{Health: &Health{}})
	})
}

func TestViewRejectsInvalidShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[Score](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"maybe"`
		}](storage)
	})
	assert.PanicsWithValue(t, "View struct must declare at least one required component", func() {
		ecs.NewView[struct {
			Position *Position `ecs:"optional"`
		}](storage)
	})
}

func TestQueryInit(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	e := storage.Spawn(Position{X: 4}, Velocity{})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	require.NotNil(t, query.Get(e))
	assert.Equal(t, float32(4), query.Get(e).Position.X)
	assert.Equal(t, 1, query.WorkingSet().Len())

	var values []float32
	for item := range query.Values() {
		values = append(values, item.Position.X)
	}
	assert.Equal(t, []float32{4}, values)
}
