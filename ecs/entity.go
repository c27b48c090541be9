package ecs

// Entity is an opaque identifier grouping a set of components.
// Identifiers are allocated from a strictly increasing counter starting at 0
// and are never reused.
type Entity uint64

// entityAllocator hands out fresh entity identifiers
type entityAllocator struct {
	next Entity
}

func (a *entityAllocator) create() Entity {
	e := a.next
	a.next++
	return e
}

// count returns the number of identifiers issued so far
func (a *entityAllocator) count() int {
	return int(a.next)
}
