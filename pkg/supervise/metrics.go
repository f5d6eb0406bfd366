package supervise

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "srvany"

type metrics struct {
	spawns        prometheus.Counter
	spawnFailures prometheus.Counter
	restarts      prometheus.Counter
	exits         prometheus.Counter
	state         prometheus.Gauge
}

func newMetrics(service string) *metrics {
	labels := prometheus.Labels{"service": service}

	return &metrics{
		spawns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "child",
			Name:        "spawns_total",
			Help:        "Number of child processes successfully spawned.",
			ConstLabels: labels,
		}),
		spawnFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "child",
			Name:        "spawn_failures_total",
			Help:        "Number of child spawn attempts refused by the OS.",
			ConstLabels: labels,
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "child",
			Name:        "restarts_total",
			Help:        "Number of times the child was respawned after exiting.",
			ConstLabels: labels,
		}),
		exits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "child",
			Name:        "exits_total",
			Help:        "Number of child exits observed by the liveness poll.",
			ConstLabels: labels,
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "supervisor",
			Name:        "state",
			Help:        "Supervisor state: 0 starting, 1 running, 2 stopping, 3 stopped.",
			ConstLabels: labels,
		}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.spawns, m.spawnFailures, m.restarts, m.exits, m.state} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}
