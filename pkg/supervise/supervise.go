package supervise

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// NewSupervisor creates a supervisor instance
func NewSupervisor(config *Config) (*Supervisor, error) {
	if config.Source == nil {
		return nil, errors.New("supervisor requires a ConfigSource")
	}

	if config.Launcher == nil {
		return nil, errors.New("supervisor requires a Launcher")
	}

	config.setDefaults()

	s := &Supervisor{
		config:  config,
		runID:   xid.New().String(),
		metrics: newMetrics(config.Service),
	}
	s.logger = log.WithFields(logrus.Fields{
		"service": config.Service,
		"run":     s.runID,
	})

	if config.Registerer != nil {
		if err := s.metrics.register(config.Registerer); err != nil {
			return nil, errors.Wrap(err, "could not register supervisor metrics")
		}
	}

	return s, nil
}

// Control returns the channel stop requests are delivered through.
func (s *Supervisor) Control() *ControlChannel {
	return s.config.Control
}

// State returns the current supervisor state. Safe to call from any
// goroutine.
func (s *Supervisor) State() State {
	return State(s.current.Load())
}

// Spawned returns how many children this run has started. Only meaningful
// once Run has returned.
func (s *Supervisor) Spawned() int {
	if s.state == nil {
		return 0
	}

	return s.state.spawned
}

// Run loads the launch configuration, spawns the child and supervises it
// until a stop is requested or the child is gone for good. It reports
// StateStopped exactly once before returning, whatever the cause. A
// cancelled ctx is treated as a stop request.
func (s *Supervisor) Run(ctx context.Context) error {
	s.state = newState(ctx)
	stopAfter := context.AfterFunc(ctx, s.config.Control.SendStop)

	defer func() {
		stopAfter()
		s.state.discardChild()
		s.setState(StateStopped, true)
		s.logger.Info("Supervisor stopped")
	}()

	s.setState(StateStarting, true)
	s.logger.Info("Starting supervisor")

	launchCfg, err := s.config.Source.Load(s.config.Service)
	if err != nil {
		s.logger.WithError(err).Errorf("Could not load launch configuration")
		return errors.Wrap(err, "could not load launch configuration")
	}

	s.logger = s.logger.WithField("program", launchCfg.Name())

	if err := s.spawn(launchCfg); err != nil {
		return err
	}

	s.setState(StateRunning, true)

	return s.loop(launchCfg)
}

// loop is the poll/react cycle. Child liveness is only consulted when the
// control wait times out, so a pending stop always wins over a pending
// restart.
func (s *Supervisor) loop(launchCfg *LaunchConfig) error {
	control := s.config.Control

	for {
		switch res := control.Wait(s.config.PollInterval); res {
		case Signalled, Closed:
			s.logger.WithField("control", res.String()).Info("Stop requested")
			s.terminate()
			return nil
		case TimedOut:
		}

		code, exited := s.state.child.Exited()
		if !exited {
			continue
		}

		s.metrics.exits.Inc()
		s.logger.WithFields(logrus.Fields{
			"pid":      s.state.child.Pid(),
			"exitCode": code,
		}).Info("Child exited")
		s.state.discardChild()

		if !launchCfg.RestartOnExit {
			return nil
		}

		s.logger.Debugf("Restarting child in %s", s.config.RestartDelay)
		if res := control.Wait(s.config.RestartDelay); res != TimedOut {
			s.logger.WithField("control", res.String()).Info("Stop requested during restart back-off")
			s.setState(StateStopping, false)
			return nil
		}

		if err := s.spawn(launchCfg); err != nil {
			return err
		}

		s.metrics.restarts.Inc()
	}
}

func (s *Supervisor) spawn(launchCfg *LaunchConfig) error {
	ctx := s.state.nextChildContext()

	child, err := s.config.Launcher.Spawn(ctx, launchCfg)
	if err != nil {
		s.metrics.spawnFailures.Inc()
		s.logger.WithError(err).Errorf("Could not spawn child")
		return errors.Wrap(err, "could not spawn child")
	}

	s.state.setChild(child)
	s.metrics.spawns.Inc()
	s.logger.WithField("pid", child.Pid()).Infof("Spawned `%s`", launchCfg.CommandString())

	return nil
}

// terminate kills the current child. Failures are logged and swallowed.
func (s *Supervisor) terminate() {
	s.setState(StateStopping, false)

	child := s.state.discardChild()
	if child == nil {
		return
	}

	if err := child.Kill(); err != nil {
		s.logger.WithError(err).WithField("pid", child.Pid()).Warnf("Could not kill child")
		return
	}

	s.logger.WithField("pid", child.Pid()).Info("Killed child")
}

func (s *Supervisor) setState(next State, report bool) {
	s.current.Store(int32(next))
	s.metrics.state.Set(float64(next))

	if report {
		s.config.Reporter.ReportStatus(next)
	}
}
