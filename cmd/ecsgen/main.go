// Command ecsgen writes the fixed-arity Shape and Select helpers of the ecs package.
//
//	go run ./cmd/ecsgen -out ecs/select_generated.go -max 6
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"golang.org/x/tools/imports"
)

const selectTemplate = `// Code generated by ecsgen. DO NOT EDIT.

package {{.Package}}

import "reflect"
{{range .Arities}}
// Shape{{.N}} returns the component types {{.Params}} as a query shape.
func Shape{{.N}}[{{.Params}} any]() []reflect.Type {
	return {{.Literal}}
}

// Select{{.N}} returns the entities that have all of the components {{.Params}}.
func Select{{.N}}[{{.Params}} any](s *Storage) EntitySet {
	return Select(s, Shape{{.N}}[{{.Params}}]()...)
}
{{end}}`

var tmpl = template.Must(template.New("select").Parse(selectTemplate))

type arity struct {
	N       int
	Params  string
	Literal string
}

type templateData struct {
	Package string
	Arities []arity
}

func arities(maxArity int) []arity {
	out := make([]arity, 0, maxArity)
	for n := 1; n <= maxArity; n++ {
		params := make([]string, n)
		typeFors := make([]string, n)
		for i := range params {
			params[i] = fmt.Sprintf("T%d", i+1)
			typeFors[i] = fmt.Sprintf("reflect.TypeFor[%s]()", params[i])
		}
		out = append(out, arity{
			N:       n,
			Params:  strings.Join(params, ", "),
			Literal: "[]reflect.Type{" + strings.Join(typeFors, ", ") + "}",
		})
	}
	return out
}

// generate renders the helpers for arities 1 through maxArity.
func generate(pkg string, maxArity int) ([]byte, error) {
	if maxArity < 1 {
		return nil, eris.Errorf("max arity must be at least 1, got %d", maxArity)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Package: pkg, Arities: arities(maxArity)}); err != nil {
		return nil, eris.Wrap(err, "executing template")
	}

	src, err := imports.Process("select_generated.go", buf.Bytes(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "formatting generated source")
	}
	return src, nil
}

func main() {
	out := flag.String("out", "select_generated.go", "Output file.")
	pkg := flag.String("package", "ecs", "Package name of the generated file.")
	maxArity := flag.Int("max", 6, "Highest arity to generate.")
	flag.Parse()

	if err := run(*out, *pkg, *maxArity); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, true))
		os.Exit(1)
	}
}

func run(out, pkg string, maxArity int) error {
	src, err := generate(pkg, maxArity)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return eris.Wrapf(err, "writing %s", out)
	}
	return nil
}
