package host

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// runConsole hosts service in the foreground. SIGINT and SIGTERM request a
// stop, SIGHUP logs the current status. A lock file keeps a second
// supervisor for the same service from starting.
func runConsole(ctx context.Context, name string, service Service, board *StatusBoard, opts *Options) error {
	lockDir := opts.LockDir
	if lockDir == "" {
		lockDir = os.TempDir()
	}

	lock := flock.New(filepath.Join(lockDir, "srvany-"+name+".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return errors.Wrapf(err, "could not lock `%s`", lock.Path())
	}

	if !locked {
		return errors.Errorf("service `%s` is already supervised (lock `%s` is held)", name, lock.Path())
	}

	defer lock.Unlock()

	logger := log.WithField("service", name)
	board.attach(func(status Status) {
		logger.WithFields(logrus.Fields{
			"state":    status.State.String(),
			"exitCode": status.ExitCode,
		}).Info("Service status changed")
	})
	defer board.attach(nil)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	done := make(chan error, 1)
	go func() {
		done <- service.Run(ctx)
	}()

	for {
		select {
		case err := <-done:
			return err
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				logger.WithField("state", service.State().String()).Info("Interrogated")
				continue
			}

			logger.WithField("signal", sig.String()).Info("Stop requested")
			service.Control().SendStop()
		}
	}
}
