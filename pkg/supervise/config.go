package supervise

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultPollInterval is the liveness check period.
	DefaultPollInterval = time.Second

	// DefaultRestartDelay is the back-off taken before a restart.
	DefaultRestartDelay = time.Second
)

// ErrNoExecutable is returned when a LaunchConfig carries no program.
var ErrNoExecutable = errors.New("no executable path")

// Validate checks the fields a spawn cannot do without.
func (c *LaunchConfig) Validate() error {
	if strings.TrimSpace(c.ExecutablePath) == "" {
		return ErrNoExecutable
	}

	return nil
}

// Name returns the canonical "name" of the program, used as the log field
// and argv[0] display name.
func (c *LaunchConfig) Name() string {
	return filepath.Base(c.ExecutablePath)
}

// InheritsEnvironment reports whether the child keeps the supervisor's
// environment.
func (c *LaunchConfig) InheritsEnvironment() bool {
	return c.Environment == nil
}

// Environ returns the child environment in os/exec form. The result is nil
// when the environment is inherited and non-nil (possibly empty) when it is
// replaced.
func (c *LaunchConfig) Environ() []string {
	if c.Environment == nil {
		return nil
	}

	environ := make([]string, 0, len(c.Environment))
	for _, pair := range c.Environment {
		environ = append(environ, pair.Key+"="+pair.Value)
	}

	return environ
}

// CommandString returns the command to execute as a string
func (c *LaunchConfig) CommandString() string {
	if c.Arguments == "" {
		return c.ExecutablePath
	}

	return c.ExecutablePath + " " + c.Arguments
}

func (c *Config) setDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}

	if c.RestartDelay <= 0 {
		c.RestartDelay = DefaultRestartDelay
	}

	if c.Control == nil {
		c.Control = NewControlChannel()
	}

	if c.Reporter == nil {
		c.Reporter = StatusReporterFunc(func(State) {})
	}
}
