package host

import (
	"context"
	"sync"
	"time"

	"glow.dev.maio.me/seanj/srvany/pkg/supervise"
)

// ServiceType is the kind of service reported to the host.
type ServiceType uint32

// ServiceOwnProcess is a service running in its own process.
const ServiceOwnProcess ServiceType = 0x10

// Controls is the set of control requests a service accepts.
type Controls uint32

// AcceptStop is the only control the supervisor accepts.
const AcceptStop Controls = 0x1

// Status is the record reported to the service host.
type Status struct {
	ServiceType ServiceType
	State       supervise.State
	Accepts     Controls
	ExitCode    uint32
	CheckPoint  uint32
	WaitHint    time.Duration
}

// Service is what a host runs: a blocking Run, the channel stop requests
// are posted to, and the current state for interrogation.
type Service interface {
	Run(ctx context.Context) error
	Control() *supervise.ControlChannel
	State() supervise.State
}

// Options configures the hosts.
type Options struct {
	// LockDir holds the per-service lock file of the console host.
	LockDir string
}

// StatusBoard is the supervisor's StatusReporter. It keeps the last
// reported Status and forwards every report to the active host.
type StatusBoard struct {
	sync.Mutex

	current Status
	sink    func(Status)
}
