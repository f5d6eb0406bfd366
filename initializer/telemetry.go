package initializer

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const telemetryShutdownTimeout = 5 * time.Second

// serveTelemetry exposes registry on addr until ctx is cancelled or stop
// is closed. A listener failure is logged and does not stop the service.
func serveTelemetry(ctx context.Context, stop <-chan struct{}, addr string, registry *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	log.WithField("address", addr).Infof("Serving telemetry")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Errorf("Telemetry listener failed")
		}

		return nil
	case <-ctx.Done():
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
	defer cancel()

	return errors.Wrap(server.Shutdown(shutdownCtx), "could not shut down telemetry listener")
}
