package app

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/ecs/debugui"
	"github.com/plus3/orrery/orrery"
	"github.com/plus3/orrery/render"
)

// SpawnBodyInspector adds a debug window listing every body with its angles
// and rates, a pause switch for the kinematic update and the attached
// model's playback position.
func SpawnBodyInspector(storage *ecs.Storage, renderer func() render.FrameStats) {
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			var reg *orrery.Registry
			if !storage.ReadSingleton(&reg) {
				return
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 400), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)
			if imgui.Begin("Bodies") {
				var playback *orrery.Playback
				if storage.ReadSingleton(&playback) {
					imgui.Checkbox("Paused", &playback.Paused)
				}

				var clock *orrery.FrameClock
				if storage.ReadSingleton(&clock) {
					imgui.Text(fmt.Sprintf("Frame %d, %.1fs", clock.Frame, clock.Elapsed))
				}
				if renderer != nil {
					stats := renderer()
					imgui.Text(fmt.Sprintf("Triangles: %d drawn, %d culled, %d clipped, %d batches",
						stats.Drawn, stats.Culled, stats.Clipped, stats.Batches))
				}

				var slot *orrery.ModelSlot
				if storage.ReadSingleton(&slot) {
					switch {
					case slot.Model != nil:
						imgui.Text(fmt.Sprintf("Model: %.2fs", slot.Mixer.Time()))
					case slot.Future != nil:
						imgui.Text("Model: loading")
					default:
						imgui.Text("Model: none")
					}
				}
				imgui.Separator()

				inspectBody(storage, reg.CentralEntity, reg.Central.Name)
				for i, body := range reg.Bodies {
					inspectBody(storage, reg.Entities[i], body.Name)
				}
			}
			imgui.End()
		},
	})
}

func inspectBody(storage *ecs.Storage, id ecs.EntityId, name string) {
	if !imgui.TreeNodeStr(name) {
		return
	}
	defer imgui.TreePop()

	if spin := ecs.ReadComponent[orrery.Spin](storage, id); spin != nil {
		imgui.Text(fmt.Sprintf("Spin: %.3f rad", spin.Node.Rotation.Y()))
		imgui.InputFloat("Spin rate##"+name, &spin.Rate)
	}
	if rev := ecs.ReadComponent[orrery.Revolution](storage, id); rev != nil {
		imgui.Text(fmt.Sprintf("Revolution: %.3f rad", rev.Pivot.Rotation.Y()))
		imgui.InputFloat("Orbit rate##"+name, &rev.Rate)
	}
	if spin := ecs.ReadComponent[orrery.Spin](storage, id); spin != nil && imgui.TreeNodeStr("Node##"+name) {
		debugui.EditFields(spin.Node)
		imgui.TreePop()
	}
}
