package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/eidstore/ecs"
)

type ComponentViewerCache struct {
	types []ecs.ComponentTypeStats
}

func NewComponentViewerComponent() ComponentViewerComponent {
	return ComponentViewerComponent{
		cache:         &ComponentViewerCache{},
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render draws one row per registered component type with the size of its
// index. Selecting a row lists the identifiers holding that type.
func (cv *ComponentViewerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Component Types", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	cv.cache.types = storage.CollectStats().ComponentBreakdown
	cv.sortTypes()

	maxEntityCount := 0
	for _, ct := range cv.cache.types {
		maxEntityCount = max(maxEntityCount, ct.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTypeTable", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Cid")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.sortColumn = int(spec.ColumnIndex())
			cv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			cv.sortTypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, ct := range cv.cache.types {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := cv.selectedCid != nil && *cv.selectedCid == ct.Cid
			if imgui.SelectableBoolV(fmt.Sprintf("%d", ct.Cid), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				cid := ct.Cid
				cv.selectedCid = &cid
			}

			imgui.TableNextColumn()
			imgui.Text(ct.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", ct.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(ct.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	if cv.selectedCid != nil {
		eids := storage.GetAll(*cv.selectedCid)
		imgui.Separator()
		imgui.Text(fmt.Sprintf("%s: %d entities (attach order)", storage.Registry().Name(*cv.selectedCid), len(eids)))
		for _, eid := range eids {
			imgui.BulletText(fmt.Sprintf("%d", eid))
		}
	}

	imgui.End()
}

func (cv *ComponentViewerComponent) sortTypes() {
	sort.SliceStable(cv.cache.types, func(i, j int) bool {
		a, b := cv.cache.types[i], cv.cache.types[j]
		var less bool

		switch cv.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.EntityCount < b.EntityCount
		default:
			less = a.Cid < b.Cid
		}

		if !cv.sortAscending {
			return !less
		}
		return less
	})
}
