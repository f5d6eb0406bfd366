package initializer

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glow.dev.maio.me/seanj/srvany/pkg/logformatter"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ConfigureLogging applies the log format, level and destination to the
// standard logrus logger. The returned Closer releases the log file.
func ConfigureLogging(config *Config) (io.Closer, error) {
	if err := logformatter.Apply(logrus.StandardLogger(), config.LogFormat, *config.Verbose, *config.Debug); err != nil {
		return nil, errors.Wrap(err, "could not configure logging")
	}

	if config.LogFile == "" {
		return nopCloser{}, nil
	}

	file, err := os.OpenFile(config.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open log file `%s`", config.LogFile)
	}

	logrus.SetOutput(file)

	return file, nil
}
