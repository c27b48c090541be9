package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lxecs/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selected ecs.Entity, hasSelection bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !hasSelection {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	ci.selectedEntity = selected

	types := storage.TypesOf(ci.selectedEntity)
	if len(types) == 0 {
		imgui.Text(fmt.Sprintf("Entity %d has no components", ci.selectedEntity))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", ci.selectedEntity))
	imgui.Text(fmt.Sprintf("Components: %d", len(types)))
	imgui.Separator()

	for _, compType := range types {
		component := storage.Get(ci.selectedEntity, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderComponent(component, compType, storage)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderComponent(component any, compType reflect.Type, storage *ecs.Storage) {
	val := reflect.ValueOf(component).Elem()

	if compType.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("value: %v", val.Interface()))
		return
	}

	for _, field := range globalReflectionCache.GetFields(compType) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}

		ci.renderField(field.Name, fieldVal, field, storage, compType)
	}
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value, field FieldInfo, storage *ecs.Storage, compType reflect.Type) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	e := ci.selectedEntity

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			SetComponentField(storage, e, compType, field.Index, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			SetComponentField(storage, e, compType, field.Index, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			SetComponentField(storage, e, compType, field.Index, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			SetComponentField(storage, e, compType, field.Index, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			SetComponentField(storage, e, compType, field.Index, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				nested := val.Field(nf.Index)
				// nested values are shown read-only
				imgui.Text(fmt.Sprintf("%s: %v", nf.Name, nested.Interface()))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

// SetComponentField writes value into the top-level field at fieldIdx of the
// entity's component, converting between numeric kinds. It reports whether the
// field was updated.
func SetComponentField(storage *ecs.Storage, e ecs.Entity, compType reflect.Type, fieldIdx int, value any) bool {
	component := storage.Get(e, compType)
	if component == nil || compType.Kind() != reflect.Struct || fieldIdx >= compType.NumField() {
		return false
	}

	field := reflect.ValueOf(component).Elem().Field(fieldIdx)
	if !field.CanSet() {
		return false
	}

	v := reflect.ValueOf(value)
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !v.CanInt() {
			return false
		}
		field.SetInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !v.CanUint() {
			return false
		}
		field.SetUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		if !v.CanFloat() {
			return false
		}
		field.SetFloat(v.Float())
	case reflect.Bool:
		if v.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(v.Bool())
	case reflect.String:
		if v.Kind() != reflect.String {
			return false
		}
		field.SetString(v.String())
	default:
		return false
	}
	return true
}
