package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty interface value so a
// component pointer can be lifted out of an `any` without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
