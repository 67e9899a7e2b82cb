// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Debug windows are ordinary components, so they are spawned, listed, and destroyed like any other entity.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/eidstore/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

func (i *ImguiItem) IsEmpty() bool {
	return i.Render == nil
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem to the end of the
// frame and records the ImGui input capture state.
type ImguiSystem struct {
	Items      ecs.Query[ImguiItem]
	InputState ImguiInputState
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	i.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// DebugUISystem renders the debug windows spawned by SpawnDebugUI.
// The entity selected in the browser drives the component inspector.
type DebugUISystem struct {
	Browsers   ecs.Query[EntityBrowserComponent]
	Inspectors ecs.Query[ComponentInspectorComponent]
	Viewers    ecs.Query[ComponentViewerComponent]
	Stats      ecs.Query[PerformanceStatsComponent]
}

func (d *DebugUISystem) Execute(frame *ecs.UpdateFrame) {
	selected := ecs.InvalidEid
	for browser := range d.Browsers.Values() {
		browser.Render(frame.Storage)
		if id := browser.GetSelectedEntity(); id != ecs.InvalidEid {
			selected = id
		}
	}

	for inspector := range d.Inspectors.Values() {
		inspector.Render(frame.Storage, selected)
	}

	for viewer := range d.Viewers.Values() {
		viewer.Render(frame.Storage)
	}

	for stats := range d.Stats.Values() {
		stats.Render(frame.Storage, float32(frame.DeltaTime))
	}
}
