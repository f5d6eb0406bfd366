//go:build !windows

package host

import (
	"context"

	"github.com/pkg/errors"
)

func isManagedService() (bool, error) {
	return false, nil
}

func runManaged(ctx context.Context, name string, service Service, board *StatusBoard) error {
	return errors.New("a service control manager is only available on Windows")
}
