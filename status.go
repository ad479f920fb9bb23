package coro

// Status is the lifecycle state of a Coroutine.
type Status int32

const (
	// Created means the runner is parked before the body has started.
	Created Status = iota
	// Running means the runner owns the turn and the driver is blocked.
	Running
	// Suspended means the body is parked inside Yield or YieldFrom.
	Suspended
	// Closed means the runner has exited or is about to.
	Closed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
