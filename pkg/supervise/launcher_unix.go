//go:build !windows

package supervise

import (
	"os/exec"
	"syscall"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// applyArguments splits the raw argument string with POSIX shell word
// rules, the native convention on this platform.
func applyArguments(cmd *exec.Cmd, cfg *LaunchConfig) error {
	if cfg.Arguments == "" {
		return nil
	}

	args, err := shlex.Split(cfg.Arguments)
	if err != nil {
		return errors.Wrapf(err, "could not split arguments `%s`", cfg.Arguments)
	}

	cmd.Args = append(cmd.Args, args...)

	return nil
}

// hideConsole detaches the child from the supervisor's controlling terminal.
func hideConsole(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.Setsid = true
}
