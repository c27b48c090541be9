package ecs_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/plus3/lxecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	positionType = reflect.TypeFor[Position]()
	velocityType = reflect.TypeFor[Velocity]()
	healthType   = reflect.TypeFor[Health]()
)

func TestSelectEmptyStore(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Equal(t, 0, ecs.Select(storage, positionType, velocityType).Len())
	assert.Equal(t, 0, ecs.Select2[Position, Velocity](storage).Len())
}

func TestSelectRequiresTypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.PanicsWithValue(t, "select requires at least one component type", func() {
		ecs.Select(storage)
	})
	assert.Panics(t, func() {
		ecs.Select(storage, reflect.TypeFor[Unregistered]())
	})
}

func TestSelectSingleTypeIsTableKeys(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{})
	storage.Spawn(Velocity{})
	c := storage.Spawn(Position{}, Velocity{})

	assert.Equal(t, []ecs.Entity{a, c}, ecs.Select1[Position](storage).Sorted())
}

func TestSelectIntersection(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{})
	storage.Spawn(Velocity{})
	both := storage.Spawn(Position{}, Velocity{})
	all := storage.Spawn(Position{}, Velocity{}, Health{})
	storage.Spawn(Health{}, Velocity{})

	assert.Equal(t, []ecs.Entity{both, all}, ecs.Select2[Position, Velocity](storage).Sorted())
	assert.Equal(t, []ecs.Entity{all}, ecs.Select3[Position, Velocity, Health](storage).Sorted())
}

func TestSelectProperties(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	rng := rand.New(rand.NewSource(7))

	type membership struct {
		pos, vel, hp bool
	}
	expected := make(map[ecs.Entity]membership)

	for i := 0; i < 500; i++ {
		e := storage.CreateEntity()
		m := membership{rng.Intn(2) == 0, rng.Intn(3) == 0, rng.Intn(4) == 0}
		if m.pos {
			ecs.AddComponent(storage, e, Position{X: float32(i)})
		}
		if m.vel {
			ecs.AddComponent(storage, e, Velocity{DX: 1})
		}
		if m.hp {
			ecs.AddComponent(storage, e, Health{Current: i})
		}
		expected[e] = m
	}

	t.Run("exactly the entities holding every type", func(t *testing.T) {
		result := ecs.Select(storage, positionType, velocityType)
		for e, m := range expected {
			assert.Equal(t, m.pos && m.vel, result.Has(e), "entity %d", e)
		}
	})

	t.Run("adding constraints shrinks the result", func(t *testing.T) {
		one := ecs.Select(storage, positionType)
		two := ecs.Select(storage, positionType, velocityType)
		three := ecs.Select(storage, positionType, velocityType, healthType)

		assert.True(t, two.Difference(one).Len() == 0)
		assert.True(t, three.Difference(two).Len() == 0)
		assert.LessOrEqual(t, three.Len(), two.Len())
		assert.LessOrEqual(t, two.Len(), one.Len())
	})

	t.Run("order of types does not matter", func(t *testing.T) {
		ab := ecs.Select(storage, positionType, velocityType)
		ba := ecs.Select(storage, velocityType, positionType)
		assert.True(t, ab.Equal(ba))

		abc := ecs.Select(storage, positionType, velocityType, healthType)
		cba := ecs.Select(storage, healthType, velocityType, positionType)
		bca := ecs.Select(storage, velocityType, healthType, positionType)
		assert.True(t, abc.Equal(cba))
		assert.True(t, abc.Equal(bca))
	})

	t.Run("no duplicates", func(t *testing.T) {
		result := ecs.Select(storage, positionType, positionType, velocityType)
		seen := make(map[ecs.Entity]bool)
		for e := range result.All() {
			require.False(t, seen[e], "duplicate entity %d", e)
			seen[e] = true
		}
		assert.Equal(t, len(seen), result.Len())
		assert.True(t, result.Equal(ecs.Select(storage, positionType, velocityType)))
	})
}

func TestShapeHelpers(t *testing.T) {
	assert.Equal(t, []reflect.Type{positionType}, ecs.Shape1[Position]())
	assert.Equal(t,
		[]reflect.Type{positionType, velocityType, healthType},
		ecs.Shape3[Position, Velocity, Health](),
	)
	assert.Len(t, ecs.Shape6[Position, Velocity, Health, Name, Score, Tag](), 6)
}

func TestEntitySet(t *testing.T) {
	var zero ecs.EntitySet
	assert.Equal(t, 0, zero.Len())
	assert.False(t, zero.Has(0))
	assert.Empty(t, zero.Sorted())

	zero.Add(0)
	zero.Add(0)
	assert.Equal(t, 1, zero.Len())
	assert.True(t, zero.Has(0))

	a := ecs.EntitySetOf(1, 2, 3, 4)
	b := ecs.EntitySetOf(3, 4, 5)

	assert.Equal(t, []ecs.Entity{3, 4}, a.Intersect(b).Sorted())
	assert.Equal(t, []ecs.Entity{1, 2, 3, 4, 5}, a.Union(b).Sorted())
	assert.Equal(t, []ecs.Entity{1, 2}, a.Difference(b).Sorted())
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(ecs.EntitySetOf(4, 3, 2, 1)))

	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Has(1))
}

func TestWorkingSetFromSystemShape(t *testing.T) {
	sys := &recordingSystem{name: "movement", shape: ecs.Shape2[Position, Velocity]()}
	world := ecs.NewWorld(newTestRegistry(), ecs.WithSystems(sys))

	mover := world.Spawn(Position{}, Velocity{})
	world.Spawn(Position{})

	world.Step(0)

	require.Len(t, sys.seen, 1)
	assert.Equal(t, []ecs.Entity{mover}, sys.seen[0])
}
