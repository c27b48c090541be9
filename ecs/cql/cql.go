// Package cql parses the component query language into filters.
//
//	CONTAINS(Position, Velocity) & !EXACT(Position) | ALL()
//
// Operators are evaluated left to right without precedence; use parentheses to group.
package cql

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"

	"github.com/plus3/lxecs/ecs"
	"github.com/plus3/lxecs/ecs/filter"
)

type cqlOperator int

const (
	opAnd cqlOperator = iota
	opOr
)

var operatorMap = map[string]cqlOperator{"&": opAnd, "|": opOr}

// Capture converts the matched operator token into a cqlOperator.
func (o *cqlOperator) Capture(s []string) error {
	if len(s) == 0 {
		return eris.New("invalid operator")
	}
	operator, ok := operatorMap[s[0]]
	if !ok {
		return eris.New("invalid operator")
	}
	*o = operator
	return nil
}

type cqlComponent struct {
	Name string `@Ident ( @"." @Ident )*`
}

type cqlAll struct{}

func (a *cqlAll) Capture(_ []string) error {
	*a = cqlAll{}
	return nil
}

type cqlNot struct {
	SubExpression *cqlValue `"!" @@`
}

type cqlExact struct {
	Components []*cqlComponent `"EXACT" "(" @@ ( "," @@ )* ")"`
}

type cqlContains struct {
	Components []*cqlComponent `"CONTAINS" "(" @@ ( "," @@ )* ")"`
}

type cqlValue struct {
	All           *cqlAll      `@("ALL" "(" ")")`
	Exact         *cqlExact    `| @@`
	Contains      *cqlContains `| @@`
	Not           *cqlNot      `| @@`
	Subexpression *cqlTerm     `| "(" @@ ")"`
}

type cqlFactor struct {
	Base *cqlValue `@@`
}

type cqlOpFactor struct {
	Operator cqlOperator `@("&" | "|")`
	Factor   *cqlFactor  `@@`
}

type cqlTerm struct {
	Left  *cqlFactor     `@@`
	Right []*cqlOpFactor `@@*`
}

func (o cqlOperator) String() string {
	switch o {
	case opAnd:
		return "&"
	case opOr:
		return "|"
	}
	panic("unsupported operator")
}

func (a *cqlAll) String() string {
	return "ALL()"
}

func componentList(components []*cqlComponent) string {
	names := make([]string, len(components))
	for i, comp := range components {
		names[i] = comp.Name
	}
	return strings.Join(names, ", ")
}

func (e *cqlExact) String() string {
	return "EXACT(" + componentList(e.Components) + ")"
}

func (e *cqlContains) String() string {
	return "CONTAINS(" + componentList(e.Components) + ")"
}

func (v *cqlValue) String() string {
	switch {
	case v.Exact != nil:
		return v.Exact.String()
	case v.Contains != nil:
		return v.Contains.String()
	case v.All != nil:
		return v.All.String()
	case v.Not != nil:
		return "!(" + v.Not.SubExpression.String() + ")"
	case v.Subexpression != nil:
		return "(" + v.Subexpression.String() + ")"
	}
	panic("empty CQL value")
}

func (f *cqlFactor) String() string {
	return f.Base.String()
}

func (o *cqlOpFactor) String() string {
	return fmt.Sprintf("%s %s", o.Operator, o.Factor)
}

func (t *cqlTerm) String() string {
	out := []string{t.Left.String()}
	for _, r := range t.Right {
		out = append(out, r.String())
	}
	return strings.Join(out, " ")
}

var internalCQLParser = participle.MustBuild[cqlTerm]()

// LookupFunc resolves a component name used in a query to its type.
type LookupFunc func(name string) (reflect.Type, error)

// RegistryLookup resolves names through the registry's short and qualified type names.
func RegistryLookup(registry *ecs.ComponentRegistry) LookupFunc {
	return func(name string) (reflect.Type, error) {
		t, ok := registry.Lookup(name)
		if !ok {
			return nil, eris.Errorf("unknown component %q", name)
		}
		return t, nil
	}
}

func resolveComponents(components []*cqlComponent, lookup LookupFunc) ([]reflect.Type, error) {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t, err := lookup(comp.Name)
		if err != nil {
			return nil, eris.Wrapf(err, "resolving %s", comp.Name)
		}
		types = append(types, t)
	}
	return types, nil
}

func valueToComponentFilter(value *cqlValue, lookup LookupFunc) (filter.ComponentFilter, error) {
	switch {
	case value.Not != nil:
		resultFilter, err := valueToComponentFilter(value.Not.SubExpression, lookup)
		if err != nil {
			return nil, err
		}
		return filter.Not(resultFilter), nil
	case value.Exact != nil:
		if len(value.Exact.Components) == 0 {
			return nil, eris.New("EXACT cannot have zero parameters")
		}
		types, err := resolveComponents(value.Exact.Components, lookup)
		if err != nil {
			return nil, err
		}
		return filter.Exact(types...), nil
	case value.All != nil:
		return filter.All(), nil
	case value.Contains != nil:
		if len(value.Contains.Components) == 0 {
			return nil, eris.New("CONTAINS cannot have zero parameters")
		}
		types, err := resolveComponents(value.Contains.Components, lookup)
		if err != nil {
			return nil, err
		}
		return filter.Contains(types...), nil
	case value.Subexpression != nil:
		return termToComponentFilter(value.Subexpression, lookup)
	}
	return nil, eris.New("unknown error during conversion from CQL AST to ComponentFilter")
}

func termToComponentFilter(term *cqlTerm, lookup LookupFunc) (filter.ComponentFilter, error) {
	if term.Left == nil {
		return nil, eris.New("not enough values in expression")
	}
	acc, err := valueToComponentFilter(term.Left.Base, lookup)
	if err != nil {
		return nil, err
	}
	for _, opFactor := range term.Right {
		resultFilter, err := valueToComponentFilter(opFactor.Factor.Base, lookup)
		if err != nil {
			return nil, err
		}
		switch opFactor.Operator {
		case opAnd:
			acc = filter.And(acc, resultFilter)
		case opOr:
			acc = filter.Or(acc, resultFilter)
		default:
			return nil, eris.New("invalid operator")
		}
	}
	return acc, nil
}

// Parse compiles a query into a filter, resolving component names with lookup.
func Parse(cqlText string, lookup LookupFunc) (filter.ComponentFilter, error) {
	term, err := internalCQLParser.ParseString("", cqlText)
	if err != nil {
		return nil, eris.Wrap(err, "parsing query")
	}
	return termToComponentFilter(term, lookup)
}

// StorageLookup resolves names through the registry and rejects types the
// storage has no table for, i.e. types registered after it was created.
func StorageLookup(storage *ecs.Storage, registry *ecs.ComponentRegistry) LookupFunc {
	known := make(map[reflect.Type]bool)
	for _, t := range storage.Types() {
		known[t] = true
	}
	byRegistry := RegistryLookup(registry)
	return func(name string) (reflect.Type, error) {
		t, err := byRegistry(name)
		if err != nil {
			return nil, err
		}
		if !known[t] {
			return nil, eris.Errorf("component %q is not in the storage", name)
		}
		return t, nil
	}
}

// Run parses a query and evaluates it against the storage.
func Run(storage *ecs.Storage, registry *ecs.ComponentRegistry, cqlText string) (ecs.EntitySet, error) {
	f, err := Parse(cqlText, StorageLookup(storage, registry))
	if err != nil {
		return ecs.EntitySet{}, err
	}
	return filter.Evaluate(storage, f), nil
}
