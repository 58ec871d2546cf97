package ecs

// System is one step of a frame. Query and Singleton fields on a system struct
// are bound to the scheduler's storage on registration; any other fields keep
// their values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
