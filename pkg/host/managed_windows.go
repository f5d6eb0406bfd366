//go:build windows

package host

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows/svc"

	"glow.dev.maio.me/seanj/srvany/pkg/supervise"
)

func isManagedService() (bool, error) {
	return svc.IsWindowsService()
}

func runManaged(ctx context.Context, name string, service Service, board *StatusBoard) error {
	handler := &scmHandler{
		ctx:     ctx,
		name:    name,
		service: service,
		board:   board,
	}

	if err := svc.Run(name, handler); err != nil {
		return errors.Wrapf(err, "service control dispatcher for `%s` failed", name)
	}

	return handler.err
}

// scmHandler bridges the service control manager to the supervisor.
type scmHandler struct {
	ctx     context.Context
	name    string
	service Service
	board   *StatusBoard

	// err is what service.Run returned, read after svc.Run returns
	err error
}

func toWindowsStatus(status Status) svc.Status {
	var accepts svc.Accepted
	if status.Accepts&AcceptStop != 0 {
		accepts = svc.AcceptStop
	}

	return svc.Status{
		State:         toWindowsState(status.State),
		Accepts:       accepts,
		CheckPoint:    status.CheckPoint,
		WaitHint:      uint32(status.WaitHint / time.Millisecond),
		Win32ExitCode: status.ExitCode,
	}
}

func toWindowsState(state supervise.State) svc.State {
	switch state {
	case supervise.StateStarting:
		return svc.StartPending
	case supervise.StateRunning:
		return svc.Running
	case supervise.StateStopping:
		return svc.StopPending
	default:
		return svc.Stopped
	}
}

// Execute runs the supervisor and drains control requests until it stops.
// The final stopped status is reported by returning: the dispatcher sets
// SERVICE_STOPPED with the returned exit code, which is always zero.
func (h *scmHandler) Execute(args []string, r <-chan svc.ChangeRequest, changes chan<- svc.Status) (bool, uint32) {
	logger := log.WithField("service", h.name)

	h.board.attach(func(status Status) {
		if status.State == supervise.StateStopped {
			return
		}

		changes <- toWindowsStatus(status)
	})
	defer h.board.attach(nil)

	done := make(chan error, 1)
	go func() {
		done <- h.service.Run(h.ctx)
	}()

	for {
		select {
		case err := <-done:
			h.err = err
			return false, 0
		case c := <-r:
			switch c.Cmd {
			case svc.Interrogate:
				changes <- toWindowsStatus(h.board.Current())
			case svc.Stop, svc.Shutdown:
				logger.Info("Stop requested by the service control manager")
				h.service.Control().SendStop()
			default:
				logger.Warnf("Unsupported control request %d", c.Cmd)
			}
		}
	}
}
