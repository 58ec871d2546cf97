package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"

	"github.com/plus3/orrery/ecs"
)

// PerformanceStats keeps a ring of recent frame times and draws them next to
// storage and scheduler statistics.
type PerformanceStats struct {
	frameHistory []float32
	frameIndex   int
	samples      []float32
}

// NewPerformanceStats keeps historyFrames frame times.
func NewPerformanceStats(historyFrames int) *PerformanceStats {
	historyFrames = max(1, historyFrames)
	return &PerformanceStats{
		frameHistory: make([]float32, historyFrames),
		samples:      make([]float32, historyFrames),
	}
}

// Record adds one frame time.
func (ps *PerformanceStats) Record(dt time.Duration) {
	ps.frameHistory[ps.frameIndex] = float32(dt.Seconds() * 1000)
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)
}

// Render draws the window. sched may be nil.
func (ps *PerformanceStats) Render(storage *ecs.Storage, sched *ecs.SchedulerStats) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(len(ps.frameHistory))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	// Oldest sample first.
	n := copy(ps.samples, ps.frameHistory[ps.frameIndex:])
	copy(ps.samples[n:], ps.frameHistory[:ps.frameIndex])

	imgui.Separator()
	if implot.BeginPlotV("Frame Time", imgui.NewVec2(-1, 150), 0) {
		implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
		implot.PlotLineFloatPtrInt("frame", &ps.samples[0], int32(len(ps.samples)))
		implot.EndPlot()
	}

	if sched != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}
}
