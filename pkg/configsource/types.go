package configsource

import (
	"github.com/pkg/errors"
)

// Parameter names, shared by every store.
const (
	KeyApplication    = "Application"
	KeyAppDirectory   = "AppDirectory"
	KeyAppParameters  = "AppParameters"
	KeyAppEnvironment = "AppEnvironment"
	KeyRestartOnExit  = "RestartOnExit"
)

var (
	// ErrMissing is returned by Source.Load when the executable path is
	// absent or unreadable. No child can be spawned.
	ErrMissing = errors.New("launch configuration missing")

	// ErrNotExist is returned by a Store for an absent parameter.
	ErrNotExist = errors.New("parameter does not exist")
)

// Store is the typed key/value view of one service's parameters. Every
// getter returns ErrNotExist (possibly wrapped) for an absent parameter and
// another error when the value exists but cannot be read as that type.
type Store interface {
	GetString(name string) (string, error)
	GetStrings(name string) ([]string, error)
	GetInteger(name string) (uint64, error)
	Close() error
}

// Opener opens the parameter store of the named service.
type Opener func(service string) (Store, error)

// Source maps a service's parameter store onto a supervise.LaunchConfig.
type Source struct {
	open Opener
}
