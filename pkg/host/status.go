package host

import (
	"glow.dev.maio.me/seanj/srvany/pkg/supervise"
)

var _ supervise.StatusReporter = (*StatusBoard)(nil)

// StatusFor builds the record reported for state. The exit code is always
// zero: failures surface to the host as a clean stop. A stopped service
// accepts no controls.
func StatusFor(state supervise.State) Status {
	accepts := AcceptStop
	if state == supervise.StateStopped {
		accepts = 0
	}

	return Status{
		ServiceType: ServiceOwnProcess,
		State:       state,
		Accepts:     accepts,
		ExitCode:    0,
		CheckPoint:  0,
		WaitHint:    0,
	}
}

// NewStatusBoard creates a board in the starting state.
func NewStatusBoard() *StatusBoard {
	return &StatusBoard{current: StatusFor(supervise.StateStarting)}
}

// ReportStatus records state and hands it to the attached host.
func (b *StatusBoard) ReportStatus(state supervise.State) {
	b.Lock()
	status := StatusFor(state)
	b.current = status
	sink := b.sink
	b.Unlock()

	if sink != nil {
		sink(status)
	}
}

// Current returns the last reported status.
func (b *StatusBoard) Current() Status {
	b.Lock()
	defer b.Unlock()

	return b.current
}

func (b *StatusBoard) attach(sink func(Status)) {
	b.Lock()
	defer b.Unlock()

	b.sink = sink
}
