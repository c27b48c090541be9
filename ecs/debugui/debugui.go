// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lxecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a World resource.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState resource with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Resource[ImguiInputState]
}

func (i *ImguiSystem) Components() []reflect.Type {
	return ecs.Shape1[ImguiItem]()
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

// RegisterDebugUIComponents registers the component types used by this package.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[TableViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}

// SpawnDebugUI creates the entity holding every debug panel.
func SpawnDebugUI(storage *ecs.Storage) ecs.Entity {
	return storage.Spawn(
		NewEntityBrowserComponent(100),
		NewComponentInspectorComponent(),
		NewTableViewerComponent(),
		NewPerformanceStatsComponent(120),
		NewQueryDebuggerComponent(),
	)
}

type debugPanels struct {
	Browser   *EntityBrowserComponent
	Inspector *ComponentInspectorComponent
	Tables    *TableViewerComponent
	Perf      *PerformanceStatsComponent
	Queries   *QueryDebuggerComponent
}

// DebugUISystem renders the debug panels spawned by SpawnDebugUI.
// Registry enables component name lookup in the query debugger and Stats, when
// set, feeds the system timings table.
type DebugUISystem struct {
	Registry *ecs.ComponentRegistry
	Stats    func() *ecs.DispatcherStats

	Panels ecs.Query[debugPanels]
}

func (d *DebugUISystem) Components() []reflect.Type {
	return ecs.Shape5[
		EntityBrowserComponent,
		ComponentInspectorComponent,
		TableViewerComponent,
		PerformanceStatsComponent,
		QueryDebuggerComponent,
	]()
}

// Execute defers panel rendering until the frame's systems have all run.
func (d *DebugUISystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	dt := float32(frame.DeltaTime)

	for panels := range d.Panels.Values() {
		frame.Commands.Defer(func() {
			panels.Browser.Render(storage)
			if e, ok := panels.Browser.SelectedEntity(); ok {
				panels.Inspector.Render(storage, e, true)
			} else {
				panels.Inspector.Render(storage, 0, false)
			}
			if typeName := panels.Tables.Render(storage); typeName != nil {
				panels.Browser.filterType = *typeName
				panels.Browser.currentPage = 0
			}
			var stats *ecs.DispatcherStats
			if d.Stats != nil {
				stats = d.Stats()
			}
			panels.Perf.Render(storage, stats, dt)
			panels.Queries.Render(storage, d.Registry)
		})
	}
}
