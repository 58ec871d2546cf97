package debugui

import (
	"time"

	"github.com/plus3/orrery/ecs"
)

// Windows is the set of general ECS debug windows.
type Windows struct {
	Performance *PerformanceStats
	Archetypes  *ArchetypeViewer
	Browser     *EntityBrowser
	Inspector   *ComponentInspector

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	last      time.Time
}

// RegisterDebugUIComponents registers the components and singletons this
// package reads.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// SpawnDebugUI installs the ImguiInputState singleton and spawns one
// ImguiItem drawing the general windows. scheduler may be nil.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler) *Windows {
	ecs.NewSingleton(storage, ImguiInputState{})

	w := &Windows{
		Performance: NewPerformanceStats(120),
		Archetypes:  NewArchetypeViewer(),
		Browser:     &EntityBrowser{},
		Inspector:   &ComponentInspector{},
		storage:     storage,
		scheduler:   scheduler,
	}
	storage.Spawn(ImguiItem{Render: w.render})
	return w
}

func (w *Windows) render() {
	now := time.Now()
	if !w.last.IsZero() {
		w.Performance.Record(now.Sub(w.last))
	}
	w.last = now

	var sched *ecs.SchedulerStats
	if w.scheduler != nil {
		sched = w.scheduler.GetStats()
	}

	w.Performance.Render(w.storage, sched)
	w.Archetypes.Render(w.storage)
	w.Browser.Render(w.storage)
	w.Inspector.Render(w.storage, w.Browser.Selected())
}
