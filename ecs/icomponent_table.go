package ecs

import (
	"iter"
	"reflect"
)

// iComponentTable is an interface for a type-erased component table.
type iComponentTable interface {
	Type() reflect.Type
	Set(e Entity, item any) bool
	Get(e Entity) any
	Has(e Entity) bool
	Len() int
	Keys() iter.Seq[Entity]
}
