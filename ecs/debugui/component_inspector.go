package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orrery/ecs"
)

// maxInspectDepth stops the editor from following pointer chains such as
// parent links forever.
const maxInspectDepth = 4

// ComponentInspector shows every component of one entity with editable
// fields.
type ComponentInspector struct{}

// Render draws the inspector window for id. A zero id shows a placeholder.
func (ci *ComponentInspector) Render(storage *ecs.Storage, id ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if id == 0 {
		imgui.Text("No entity selected")
		return
	}

	archetype := storage.GetArchetypeById(id.ArchetypeId())
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d not found", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			EditFields(component)
			imgui.TreePop()
		}
	}
}

// EditFields draws an editor for the exported fields of the struct ptr
// points to. Edits are written straight through the pointer.
func EditFields(ptr any) {
	val := reflect.ValueOf(ptr)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return
	}
	editStruct(val.Elem(), 0)
}

func editStruct(val reflect.Value, depth int) {
	for _, field := range exportedFields(val.Type()) {
		editField(field.name, val.Field(field.index), depth)
	}
}

func editField(name string, val reflect.Value, depth int) {
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}

	label := "##" + name + fmt.Sprint(depth)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Array:
		if val.Len() == 3 && val.Type().Elem().Kind() == reflect.Float32 && val.CanAddr() {
			imgui.Text(name + ":")
			imgui.SameLine()
			imgui.SetNextItemWidth(250)
			imgui.InputFloat3(label, (*[3]float32)(val.Addr().UnsafePointer()))
			return
		}
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))

	case reflect.Struct:
		if depth >= maxInspectDepth {
			imgui.Text(fmt.Sprintf("%s: {...}", name))
			return
		}
		if imgui.TreeNodeStr(name) {
			editStruct(val, depth+1)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
