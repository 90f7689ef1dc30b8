package pager

import "fmt"

// State is the lifecycle state of a pager session.
type State int32

const (
	// StateIdle is a session that has not started its pager yet.
	StateIdle State = iota
	// StateActive is a running pager accepting output.
	StateActive
	// StateClosing means input is complete and the pager is being awaited.
	StateClosing
	// StateAborted means the session ended early: the pager went away or
	// rendering failed.
	StateAborted
	// StateDone means cleanup has finished.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateAborted:
		return "aborted"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}
