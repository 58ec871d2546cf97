package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orrery/ecs"
)

// EntityBrowser lists entities with a text filter and remembers the
// selected one.
type EntityBrowser struct {
	// Label names an entity in the list. Nil shows bare IDs.
	Label func(ecs.EntityId) string

	selected   ecs.EntityId
	filterText string
}

// Selected returns the entity last clicked, or zero.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

// Select makes id the selected entity.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filter := strings.ToLower(eb.filterText)
	shown := 0

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for archetype := range storage.Archetypes() {
			names := make([]string, len(archetype.Types()))
			for i, t := range archetype.Types() {
				names[i] = t.String()
			}
			components := strings.Join(names, ", ")

			for id := range archetype.Iter() {
				label := eb.label(id)
				if filter != "" &&
					!strings.Contains(strings.ToLower(label), filter) &&
					!strings.Contains(strings.ToLower(components), filter) {
					continue
				}
				shown++

				imgui.TableNextRow()
				imgui.TableNextColumn()
				if imgui.SelectableBoolV(label, eb.selected == id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
					eb.selected = id
				}
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", archetype.ID()))
				imgui.TableNextColumn()
				imgui.Text(components)
			}
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Total: %d entities", shown))
}

func (eb *EntityBrowser) label(id ecs.EntityId) string {
	if eb.Label != nil {
		if name := eb.Label(id); name != "" {
			return fmt.Sprintf("%s##%d", name, id)
		}
	}
	return fmt.Sprintf("%d", id)
}
