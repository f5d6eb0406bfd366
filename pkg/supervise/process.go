package supervise

import (
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// killDrainTimeout bounds how long Kill waits for the killed process to be
// collected.
const killDrainTimeout = 5 * time.Second

// process is the os/exec backed Child. A single goroutine calls cmd.Wait
// and closes done, so liveness checks never block.
type process struct {
	cmd  *exec.Cmd
	fwd  *forwarder
	done chan struct{}

	// exitCode is written before done is closed
	exitCode int
}

var _ Child = (*process)(nil)

func newProcess(cmd *exec.Cmd, fwd *forwarder) *process {
	p := &process{
		cmd:      cmd,
		fwd:      fwd,
		done:     make(chan struct{}),
		exitCode: -1,
	}

	go p.wait()

	return p
}

func (p *process) wait() {
	err := p.cmd.Wait()
	if p.cmd.ProcessState != nil {
		p.exitCode = p.cmd.ProcessState.ExitCode()
	}

	if err != nil {
		log.WithError(err).WithField("pid", p.Pid()).Debugf("Child wait returned an error")
	}

	close(p.done)
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *process) Exited() (int, bool) {
	select {
	case <-p.done:
		return p.exitCode, true
	default:
		return 0, false
	}
}

func (p *process) Kill() error {
	defer p.fwd.Stop()

	if err := p.cmd.Process.Kill(); err != nil {
		return errors.Wrapf(err, "could not kill pid %d", p.Pid())
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(killDrainTimeout):
		return errors.Errorf("pid %d was not collected within %s of being killed", p.Pid(), killDrainTimeout)
	}
}
