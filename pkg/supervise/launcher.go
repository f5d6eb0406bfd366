package supervise

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrSpawn is matched by every error ExecLauncher.Spawn returns.
var ErrSpawn = errors.New("could not spawn process")

// SpawnError is returned when the OS refuses to create the child.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrSpawn, e.Path, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *SpawnError) Unwrap() error { return e.Err }

// Cause implements the github.com/pkg/errors causer.
func (e *SpawnError) Cause() error { return e.Err }

// Is makes errors.Is(err, ErrSpawn) hold for every SpawnError.
func (e *SpawnError) Is(target error) bool { return target == ErrSpawn }

// ExecLauncher spawns children with os/exec.
type ExecLauncher struct {
	// ForwardOutput captures the child's stdout and stderr into the log.
	// Otherwise both are discarded.
	ForwardOutput bool

	// OutputFile, if set with ForwardOutput, additionally receives every
	// line the child writes.
	OutputFile string
}

var _ Launcher = (*ExecLauncher)(nil)

// Spawn starts one child process for cfg. It is never retried here.
func (l *ExecLauncher) Spawn(ctx context.Context, cfg *LaunchConfig) (Child, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &SpawnError{Path: cfg.ExecutablePath, Err: err}
	}

	cmd, err := buildCommand(cfg)
	if err != nil {
		return nil, &SpawnError{Path: cfg.ExecutablePath, Err: err}
	}

	var fwd *forwarder
	if l.ForwardOutput {
		fwd, err = attachForwarder(cmd, l.OutputFile)
		if err != nil {
			return nil, &SpawnError{Path: cfg.ExecutablePath, Err: err}
		}
	}

	if err := cmd.Start(); err != nil {
		fwd.abort()
		return nil, &SpawnError{Path: cfg.ExecutablePath, Err: err}
	}

	log.WithFields(logrus.Fields{
		"pid":     cmd.Process.Pid,
		"dir":     cmd.Dir,
		"inherit": cfg.InheritsEnvironment(),
	}).Debugf("Started %s", cfg.Name())

	fwd.Start(ctx, cmd.Process.Pid)

	return newProcess(cmd, fwd), nil
}

// buildCommand prepares the exec.Cmd: working directory, environment,
// platform argument handling and the no-console flags.
func buildCommand(cfg *LaunchConfig) (*exec.Cmd, error) {
	cmd := exec.Command(cfg.ExecutablePath)
	cmd.Dir = cfg.WorkingDirectory
	cmd.Env = cfg.Environ()

	if err := applyArguments(cmd, cfg); err != nil {
		return nil, errors.Wrap(err, "could not apply arguments")
	}

	hideConsole(cmd)

	return cmd, nil
}
