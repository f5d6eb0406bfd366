package supervise

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mitchellh/go-linereader"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// EnvPair is a single environment variable handed to the child.
type EnvPair struct {
	Key   string
	Value string
}

// LaunchConfig describes how to start the child process. It is loaded once
// per supervisor run and never modified afterwards.
type LaunchConfig struct {
	// ExecutablePath is the program to run. Required.
	ExecutablePath string

	// WorkingDirectory is the child's working directory. Empty inherits
	// the supervisor's own.
	WorkingDirectory string

	// Arguments is the raw, unsplit argument string. It is handed to the
	// platform's native argument convention as-is.
	Arguments string

	// Environment replaces the child's environment entirely when non-nil.
	// A nil slice inherits the supervisor's environment, an empty non-nil
	// slice starts the child with no environment at all.
	Environment []EnvPair

	// RestartOnExit respawns the child after it exits.
	RestartOnExit bool
}

// Child is a handle on a spawned process, owned by the supervision loop.
type Child interface {
	// Pid is the OS process id.
	Pid() int

	// Exited reports, without blocking, whether the process has exited and
	// its exit code if it has.
	Exited() (code int, exited bool)

	// Kill force-terminates the process.
	Kill() error
}

// Launcher starts child processes.
type Launcher interface {
	// Spawn starts one process. ctx bounds helpers attached to the child
	// (output forwarding), not the process itself.
	Spawn(ctx context.Context, cfg *LaunchConfig) (Child, error)
}

// ConfigSource loads the launch configuration for a service.
type ConfigSource interface {
	Load(service string) (*LaunchConfig, error)
}

// StatusReporter receives the externally visible state transitions.
type StatusReporter interface {
	ReportStatus(state State)
}

// StatusReporterFunc adapts a function to a StatusReporter.
type StatusReporterFunc func(state State)

// ReportStatus calls f(state).
func (f StatusReporterFunc) ReportStatus(state State) { f(state) }

// Config holds the configuration for the supervisor
type Config struct {
	// Service is the identity the launch configuration is looked up by
	Service string

	// Source loads the launch configuration
	Source ConfigSource

	// Launcher spawns the child
	Launcher Launcher

	// Reporter receives status transitions. May be nil.
	Reporter StatusReporter

	// Control delivers stop requests into the supervision loop. A fresh
	// channel is created when nil.
	Control *ControlChannel

	// PollInterval is how often child liveness is checked
	PollInterval time.Duration

	// RestartDelay is the fixed back-off before a restart
	RestartDelay time.Duration

	// Registerer receives the supervisor metrics. May be nil.
	Registerer prometheus.Registerer
}

// Supervisor is the actual supervisor instance: it owns the child handle,
// polls it for exit, applies the restart policy and reacts to stop requests.
type Supervisor struct {
	// config is the supervisor `Config` object
	config *Config

	// current holds the State, written by the loop and read by State()
	current atomic.Int32

	// runID tags the log lines of one run
	runID string

	logger  *logrus.Entry
	metrics *metrics
	state   *state
}

// state is a container for the child owned by the supervision loop
type state struct {
	child       Child
	childCtx    context.Context
	childCancel context.CancelFunc
	parentCtx   context.Context
	spawned     int
}

// forwarder takes a stdout and stderr pipe from a child program
// and muxes them both into our logger
type forwarder struct {
	sync.Mutex

	stdoutR, stdoutW *os.File
	stderrR, stderrW *os.File

	stdoutCh *linereader.Reader
	stderrCh *linereader.Reader

	outputFile string

	cancel context.CancelFunc
}
