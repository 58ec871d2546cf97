package orrery

import (
	"log/slog"

	"github.com/plus3/orrery/ecs"
)

// ClockSystem advances FrameClock.
type ClockSystem struct {
	Clock ecs.Singleton[FrameClock]
}

// Execute counts the pass and adds its DeltaTime.
func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if clock == nil {
		return
	}
	clock.Frame++
	clock.Elapsed += frame.DeltaTime
}

// KinematicSystem adds each Spin and Revolution rate to its node's Y
// rotation. The increment is per pass and ignores DeltaTime.
type KinematicSystem struct {
	Spinning  ecs.Query[struct{ *Spin }]
	Revolving ecs.Query[struct{ *Revolution }]
	Playback  ecs.Singleton[Playback]
}

// Execute advances every spin and revolution unless playback is paused.
func (s *KinematicSystem) Execute(frame *ecs.UpdateFrame) {
	if p := s.Playback.Get(); p != nil && p.Paused {
		return
	}

	for body := range s.Spinning.Values() {
		body.Spin.Node.Rotation[1] += body.Spin.Rate
	}
	for body := range s.Revolving.Values() {
		body.Revolution.Pivot.Rotation[1] += body.Revolution.Rate
	}
}

// ModelSystem installs the attached model once its load resolves and then
// advances its mixer by DeltaTime every pass. A failed load is logged once
// and the slot is cleared.
type ModelSystem struct {
	Slot     ecs.Singleton[ModelSlot]
	Registry ecs.Singleton[Registry]

	Logger *slog.Logger
}

// Execute polls the pending load, then drives the mixer.
func (s *ModelSystem) Execute(frame *ecs.UpdateFrame) {
	slot := s.Slot.Get()
	if slot == nil {
		return
	}

	if slot.Model != nil {
		slot.Mixer.Update(frame.DeltaTime)
		return
	}
	if slot.Future == nil {
		return
	}

	model, ok, err := slot.Future.Poll()
	if !ok {
		return
	}
	slot.Future = nil

	if err != nil {
		s.logger().Error("model load failed", "err", err)
		return
	}
	reg := s.Registry.Get()
	if model == nil || reg == nil {
		return
	}

	central := reg.Central.Self
	frame.Commands.Defer(func() {
		central.Add(model.Root)
		slot.Model = model
		slot.Mixer.Play(model.Clip(slot.Clip))
		s.logger().Info("model attached", "body", reg.Central.Name, "clips", len(model.Clips))
	})
}

func (s *ModelSystem) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// RegisterSystems adds the clock, kinematic and model systems to scheduler
// in update order.
func RegisterSystems(scheduler *ecs.Scheduler, logger *slog.Logger) {
	scheduler.Register(&ClockSystem{})
	scheduler.Register(&KinematicSystem{})
	scheduler.Register(&ModelSystem{Logger: logger})
}
