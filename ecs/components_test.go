package ecs_test

import "github.com/plus3/orrery/ecs"

type Angle struct {
	Radians float32
}

type Rate struct {
	PerFrame float32
}

type Label struct {
	Value string
}

type Pinned struct{}

type Magnitude float64

type Clock struct {
	Ticks int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Angle](registry)
	ecs.RegisterComponent[Rate](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Pinned](registry)
	ecs.RegisterComponent[Magnitude](registry)
	return registry
}
