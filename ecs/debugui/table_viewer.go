package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lxecs/ecs"
)

type TableViewerCache struct {
	tables        []ecs.TableStats
	version       storageVersion
	sortColumn    int
	sortAscending bool
}

func NewTableViewerComponent() TableViewerComponent {
	return TableViewerComponent{
		cache: &TableViewerCache{
			version:       storageVersion{entities: -1},
			sortColumn:    1,
			sortAscending: false,
		},
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render draws one row per component table and returns the type name of the
// row clicked this frame, if any.
func (tv *TableViewerComponent) Render(storage *ecs.Storage) *string {
	if !imgui.BeginV("Component Tables", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	tv.rebuildCacheIfNeeded(storage)

	maxCount := 0
	for _, table := range tv.cache.tables {
		maxCount = max(maxCount, table.Components)
	}

	var clicked *string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTables", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Blocks")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.cache.sortColumn = int(spec.ColumnIndex())
			tv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			tv.sortColumn = tv.cache.sortColumn
			tv.sortAscending = tv.cache.sortAscending
			tv.sortTables()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, table := range tv.cache.tables {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tv.selectedType != nil && *tv.selectedType == table.Name
			if imgui.SelectableBoolV(table.Name, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				name := table.Name
				clicked = &name
				tv.selectedType = &name
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Components))

			if maxCount > 0 {
				barWidth := float32(table.Components) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Blocks))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (tv *TableViewerComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	current := versionOf(storage)
	if tv.cache.version == current {
		return
	}
	tv.cache.version = current
	tv.cache.tables = storage.CollectStats().Tables
	tv.sortTables()
}

func (tv *TableViewerComponent) sortTables() {
	sort.SliceStable(tv.cache.tables, func(i, j int) bool {
		a, b := tv.cache.tables[i], tv.cache.tables[j]
		if !tv.cache.sortAscending {
			a, b = b, a
		}
		var less bool

		switch tv.cache.sortColumn {
		case 0:
			less = a.Name < b.Name
		case 2:
			less = a.Blocks < b.Blocks
		default:
			less = a.Components < b.Components
		}

		return less
	})
}
