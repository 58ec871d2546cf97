package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orrery/ecs"
)

// ArchetypeViewer lists archetypes with a sortable table.
type ArchetypeViewer struct {
	selected      *uint32
	sortColumn    int
	sortAscending bool
}

// NewArchetypeViewer returns a viewer sorted by entity count, largest first.
func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{sortColumn: 3}
}

// Selected returns the ID of the archetype last clicked, or nil.
func (av *ArchetypeViewer) Selected() *uint32 {
	return av.selected
}

func (av *ArchetypeViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	rows := storage.CollectStats().ArchetypeBreakdown
	maxEntityCount := 0
	for _, arch := range rows {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	defer imgui.EndTable()

	imgui.TableSetupColumn("Archetype ID")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Comp Count")
	imgui.TableSetupColumn("Entity Count")
	imgui.TableHeadersRow()

	if sortSpecs := imgui.TableGetSortSpecs(); sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		av.sortColumn = int(spec.ColumnIndex())
		av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		sortSpecs.SetSpecsDirty(false)
	}
	sortArchetypes(rows, av.sortColumn, av.sortAscending)

	for _, arch := range rows {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		isSelected := av.selected != nil && *av.selected == arch.ID
		if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			id := arch.ID
			av.selected = &id
		}

		imgui.TableNextColumn()
		imgui.Text(strings.Join(arch.ComponentTypes, ", "))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

		if maxEntityCount > 0 {
			barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
			imgui.SameLine()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
		}
	}
}

func sortArchetypes(rows []ecs.ArchetypeStats, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b ecs.ArchetypeStats) int {
		var c int
		switch column {
		case 0:
			c = cmp.Compare(a.ID, b.ID)
		case 1:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 2:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		default:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if !ascending {
			return -c
		}
		return c
	})
}
