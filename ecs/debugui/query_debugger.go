package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lxecs/ecs"
	"github.com/plus3/lxecs/ecs/cql"
)

type QueryDebuggerCache struct {
	componentTypes []string
	typesByName    map[string]reflect.Type
	lastQuery      string
	queryResult    []ecs.Entity
	queryErr       error
	version        storageVersion
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			version: storageVersion{entities: -1},
		},
	}
}

func (qd *QueryDebuggerComponent) Render(storage *ecs.Storage, registry *ecs.ComponentRegistry) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(storage)

	if registry != nil {
		imgui.Text("CQL:")
		imgui.SameLine()
		imgui.InputTextWithHint("##cql", "CONTAINS(Position) & !EXACT(Tag)", &qd.queryText, imgui.InputTextFlagsNone, nil)

		if qd.queryText != "" {
			matches, err := qd.runQuery(storage, registry)
			if err != nil {
				imgui.Text(err.Error())
			} else {
				imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))
				imgui.Text(summarizeEntities(matches, 32))
			}
		}
		imgui.Separator()
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			if selected {
				qd.selectedComponentTypes[compType] = true
			} else {
				delete(qd.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	selectedTypes := qd.selectedTypes()
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := ecs.Select(storage, selectedTypes...)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", matching.Len()))

	if imgui.TreeNodeStr("Table Sizes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryTableSizes", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, t := range selectedTypes {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(t.String())

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%d", storage.Len(t)))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// runQuery evaluates the CQL text, reusing the previous result while neither
// the query nor the storage structure changed.
func (qd *QueryDebuggerComponent) runQuery(storage *ecs.Storage, registry *ecs.ComponentRegistry) ([]ecs.Entity, error) {
	if qd.queryText == qd.cache.lastQuery && (qd.cache.queryResult != nil || qd.cache.queryErr != nil) {
		return qd.cache.queryResult, qd.cache.queryErr
	}

	qd.cache.lastQuery = qd.queryText
	result, err := cql.Run(storage, registry, qd.queryText)
	if err != nil {
		qd.cache.queryResult, qd.cache.queryErr = nil, err
		return nil, err
	}
	qd.cache.queryResult, qd.cache.queryErr = result.Sorted(), nil
	return qd.cache.queryResult, nil
}

// selectedTypes returns the checked component types, sorted by name.
func (qd *QueryDebuggerComponent) selectedTypes() []reflect.Type {
	names := make([]string, 0, len(qd.selectedComponentTypes))
	for typeName := range qd.selectedComponentTypes {
		if _, ok := qd.cache.typesByName[typeName]; ok {
			names = append(names, typeName)
		}
	}
	sort.Strings(names)

	types := make([]reflect.Type, len(names))
	for i, name := range names {
		types[i] = qd.cache.typesByName[name]
	}
	return types
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	current := versionOf(storage)
	if qd.cache.version == current {
		return
	}
	qd.cache.version = current
	qd.cache.lastQuery = ""
	qd.cache.queryResult = nil
	qd.cache.queryErr = nil
	qd.rebuildCache(storage)
}

func (qd *QueryDebuggerComponent) rebuildCache(storage *ecs.Storage) {
	qd.cache.typesByName = make(map[string]reflect.Type)
	qd.cache.componentTypes = qd.cache.componentTypes[:0]

	for _, t := range storage.Types() {
		if storage.Len(t) == 0 {
			continue
		}
		qd.cache.typesByName[t.String()] = t
		qd.cache.componentTypes = append(qd.cache.componentTypes, t.String())
	}

	sort.Strings(qd.cache.componentTypes)
}

func summarizeEntities(entities []ecs.Entity, limit int) string {
	parts := make([]string, 0, min(len(entities), limit)+1)
	for i, e := range entities {
		if i == limit {
			parts = append(parts, fmt.Sprintf("... %d more", len(entities)-limit))
			break
		}
		parts = append(parts, fmt.Sprintf("%d", e))
	}
	return strings.Join(parts, ", ")
}
