package core

import "sync/atomic"

// State is the controller lifecycle. Transitions only move forward within
// one run: Uninitialized → Starting → Running → ShuttingDown → Stopped,
// and Stopped → Starting on a full restart.
type State int32

const (
	StateUninitialized State = iota
	StateStarting
	StateRunning
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting-down"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

type stateVar struct {
	v atomic.Int32
}

func (s *stateVar) get() State { return State(s.v.Load()) }

func (s *stateVar) set(next State) { s.v.Store(int32(next)) }

func (s *stateVar) compareAndSwap(from, to State) bool {
	return s.v.CompareAndSwap(int32(from), int32(to))
}
