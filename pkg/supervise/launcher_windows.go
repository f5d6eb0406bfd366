//go:build windows

package supervise

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// applyArguments appends the raw argument string to the command line
// verbatim. The child parses it with whatever convention it uses.
func applyArguments(cmd *exec.Cmd, cfg *LaunchConfig) error {
	if cfg.Arguments == "" {
		return nil
	}

	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.CmdLine = syscall.EscapeArg(cfg.ExecutablePath) + " " + cfg.Arguments
	cmd.Args = append(cmd.Args, cfg.Arguments)

	return nil
}

// hideConsole keeps the child from creating a console window.
func hideConsole(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.HideWindow = true
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NO_WINDOW
}
