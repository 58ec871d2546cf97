// Package debugui draws Dear ImGui windows from ECS entities. Each window is
// an ImguiItem entity; ImguiSystem queues their render functions so they run
// after the frame's systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orrery/ecs"
)

// ImguiItem is a component holding a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard this
// frame. Other input handlers should stand down while it does.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every ImguiItem's render
// function to the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute copies ImGui's capture flags and queues every item's render.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}
