package configsource

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glow.dev.maio.me/seanj/srvany/pkg/supervise"
)

var _ supervise.ConfigSource = (*Source)(nil)

// New creates a Source reading through open.
func New(open Opener) *Source {
	return &Source{open: open}
}

// Load reads the launch configuration of service. Every call reads the
// store again. Only the executable path is mandatory; every other parameter
// that is absent or unreadable is left unset.
func (s *Source) Load(service string) (*supervise.LaunchConfig, error) {
	store, err := s.open(service)
	if err != nil {
		return nil, errors.Wrapf(ErrMissing, "could not open parameters of service `%s`: %s", service, err)
	}

	defer store.Close()

	logger := log.WithField("service", service)

	path, err := store.GetString(KeyApplication)
	if err != nil {
		return nil, errors.Wrapf(ErrMissing, "could not read %s of service `%s`: %s", KeyApplication, service, err)
	}

	if strings.TrimSpace(path) == "" {
		return nil, errors.Wrapf(ErrMissing, "%s of service `%s` is empty", KeyApplication, service)
	}

	cfg := &supervise.LaunchConfig{
		ExecutablePath:   path,
		WorkingDirectory: optionalString(logger, store, KeyAppDirectory),
		Arguments:        optionalString(logger, store, KeyAppParameters),
	}

	if entries, err := store.GetStrings(KeyAppEnvironment); err == nil {
		cfg.Environment = ParseEnvironment(entries)
	} else {
		logAbsent(logger, KeyAppEnvironment, err)
	}

	if flag, err := store.GetInteger(KeyRestartOnExit); err == nil {
		cfg.RestartOnExit = flag == 1
	} else {
		logAbsent(logger, KeyRestartOnExit, err)
	}

	logger.Trace(spew.Sprintf("loaded launch configuration: %#v", cfg))

	return cfg, nil
}

// ParseEnvironment turns `KEY=VALUE` entries into pairs, splitting on the
// first `=`. Entries without one are dropped. The result is never nil.
func ParseEnvironment(entries []string) []supervise.EnvPair {
	pairs := make([]supervise.EnvPair, 0, len(entries))

	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			log.Debugf("Dropping environment entry without `=`: `%s`", entry)
			continue
		}

		pairs = append(pairs, supervise.EnvPair{Key: key, Value: value})
	}

	return pairs
}

func optionalString(logger *logrus.Entry, store Store, name string) string {
	value, err := store.GetString(name)
	if err != nil {
		logAbsent(logger, name, err)
		return ""
	}

	return value
}

func logAbsent(logger *logrus.Entry, name string, err error) {
	if errors.Is(err, ErrNotExist) {
		logger.Debugf("%s is not set", name)
		return
	}

	logger.WithError(err).Warnf("Ignoring unreadable %s", name)
}
