package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lxecs/ecs"
)

type EntityInfo struct {
	ID             ecs.Entity
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	version       storageVersion
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterType = ""
	}
	if eb.filterType != "" {
		imgui.Text(fmt.Sprintf("Table: %s", eb.filterType))
	}

	filteredEntities := eb.getFilteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.getFilteredEntities()
		}

		startIdx, endIdx := eb.pageBounds(len(filteredEntities))
		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedEntity == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := eb.totalPages(len(filteredEntities))
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) totalPages(n int) int {
	if eb.maxEntitiesPerPage <= 0 {
		return 1
	}
	return max(1, (n+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage)
}

func (eb *EntityBrowserComponent) pageBounds(n int) (int, int) {
	if eb.maxEntitiesPerPage <= 0 {
		return 0, n
	}
	eb.currentPage = min(eb.currentPage, eb.totalPages(n)-1)
	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	endIdx := min(startIdx+eb.maxEntitiesPerPage, n)
	return startIdx, endIdx
}

func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	current := versionOf(storage)
	if eb.cache.version != current {
		eb.cache.entities = nil
		eb.cache.version = current
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(storage)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(storage *ecs.Storage) {
	entities := storage.Entities()
	eb.cache.entities = make([]EntityInfo, 0, entities.Len())

	for _, e := range entities.Sorted() {
		types := storage.TypesOf(e)
		componentTypes := make([]string, len(types))
		for i, t := range types {
			componentTypes[i] = t.String()
		}

		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             e,
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		if !eb.cache.sortAscending {
			a, b = b, a
		}
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		return less
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterType == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterType != "" && !slices.Contains(entity.ComponentTypes, eb.filterType) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// Select marks e as the entity shown by the component inspector.
func (eb *EntityBrowserComponent) Select(e ecs.Entity) {
	eb.selectedEntity = e
	eb.hasSelection = true
}

// SelectedEntity returns the selected entity, if any.
func (eb *EntityBrowserComponent) SelectedEntity() (ecs.Entity, bool) {
	return eb.selectedEntity, eb.hasSelection
}
