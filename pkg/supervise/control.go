package supervise

import (
	"sync"
	"time"
)

// WaitResult is the outcome of ControlChannel.Wait.
type WaitResult int

const (
	// TimedOut means no control signal arrived within the timeout.
	TimedOut WaitResult = iota

	// Signalled means a stop was requested.
	Signalled

	// Closed means the control path was torn down. The supervisor treats
	// it exactly like Signalled.
	Closed
)

func (r WaitResult) String() string {
	switch r {
	case TimedOut:
		return "timed out"
	case Signalled:
		return "signalled"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// ControlChannel carries the stop request from the host's control callback
// into the supervision loop. SendStop and Close never block and may be
// called any number of times.
type ControlChannel struct {
	stopCh   chan struct{}
	closedCh chan struct{}

	sendOnce  sync.Once
	closeOnce sync.Once
}

// NewControlChannel creates an open control channel.
func NewControlChannel() *ControlChannel {
	return &ControlChannel{
		stopCh:   make(chan struct{}, 1),
		closedCh: make(chan struct{}),
	}
}

// SendStop requests a stop. Only the first call delivers a signal.
func (c *ControlChannel) SendStop() {
	c.sendOnce.Do(func() {
		c.stopCh <- struct{}{}
	})
}

// Close marks the sending side as gone. Waiters observe Closed.
func (c *ControlChannel) Close() {
	c.closeOnce.Do(func() {
		close(c.closedCh)
	})
}

// Wait blocks for up to timeout waiting for a stop request.
func (c *ControlChannel) Wait(timeout time.Duration) WaitResult {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-c.stopCh:
		return Signalled
	case <-c.closedCh:
		return Closed
	case <-timer.C:
		return TimedOut
	}
}
