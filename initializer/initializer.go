package initializer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"glow.dev.maio.me/seanj/srvany/pkg/configsource"
	"glow.dev.maio.me/seanj/srvany/pkg/host"
	"glow.dev.maio.me/seanj/srvany/pkg/supervise"
)

// Run wires the supervisor for config.Service and hosts it until it stops.
// config must have passed ValidateAndSetDefaults.
func Run(ctx context.Context, config *Config) error {
	logger := log.WithField("service", config.Service)

	if !*config.NoReaper {
		startReaper()
	}

	registry := newRegistry(config)
	board := host.NewStatusBoard()

	sup, err := supervise.NewSupervisor(&supervise.Config{
		Service:  config.Service,
		Source:   configsource.New(configsource.DefaultOpener(config.ConfigDir)),
		Launcher: &supervise.ExecLauncher{
			ForwardOutput: *config.ForwardOutput,
			OutputFile:    config.ChildLog,
		},
		Reporter:     board,
		PollInterval: config.PollIntervalDuration,
		RestartDelay: config.RestartDelayDuration,
		Registerer:   registry,
	})
	if err != nil {
		return errors.Wrap(err, "could not create supervisor")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	serviceDone := make(chan struct{})

	if config.TelemetryAddress != "" {
		group.Go(func() error {
			return serveTelemetry(groupCtx, serviceDone, config.TelemetryAddress, registry)
		})
	}

	group.Go(func() error {
		defer close(serviceDone)

		logger.Debugf("Handing supervisor to the service host")
		return host.Run(groupCtx, config.Service, sup, board, &host.Options{LockDir: config.LockDir})
	})

	return group.Wait()
}

func newRegistry(config *Config) *prometheus.Registry {
	registry := prometheus.NewRegistry()

	if *config.TelemetryCollectorGolang {
		registry.MustRegister(collectors.NewGoCollector())
	}

	if *config.TelemetryCollectorProcess {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return registry
}
