package supervise

import (
	"context"
)

// State is the supervisor's externally visible state.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

func newState(parentCtx context.Context) *state {
	childCtx, childCancel := context.WithCancel(parentCtx)
	return &state{
		child:       nil,
		childCtx:    childCtx,
		childCancel: childCancel,
		parentCtx:   parentCtx,
	}
}

// nextChildContext cancels the previous child's context and creates the
// context the next child will be spawned with.
func (s *state) nextChildContext() context.Context {
	s.childCancel()

	s.childCtx, s.childCancel = context.WithCancel(s.parentCtx)
	return s.childCtx
}

// setChild installs a freshly spawned child.
func (s *state) setChild(child Child) {
	s.child = child
	s.spawned++
}

// discardChild drops the current handle. Returns the dropped child, nil if
// there was none.
func (s *state) discardChild() Child {
	child := s.child
	s.child = nil
	s.childCancel()

	return child
}
