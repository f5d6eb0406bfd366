package host

import (
	"context"

	"github.com/pkg/errors"
)

// Run hosts service under the service control manager when the process was
// started as a service, and as a console program otherwise. It returns once
// the service has stopped.
func Run(ctx context.Context, name string, service Service, board *StatusBoard, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	managed, err := isManagedService()
	if err != nil {
		return errors.Wrap(err, "could not determine how the process was started")
	}

	if managed {
		log.WithField("service", name).Info("Running under the service control manager")
		return runManaged(ctx, name, service, board)
	}

	log.WithField("service", name).Info("Running as a console program")
	return runConsole(ctx, name, service, board, opts)
}
