package logformatter

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// FormatDefault creates the default logrus.TextFormatter configuration
	FormatDefault = "default"

	// FormatPlain creates a barebones formatter with few features enabled,
	// for log files and the service event sink where colors are noise
	FormatPlain = "plain"

	// FormatJSON creates a logrus.JSONFormatter
	FormatJSON = "json"
)

// Configure returns a configured logrus.Formatter based on
// the provided formatter name
func Configure(useFormatter string) (log.Formatter, error) {
	var formatter log.Formatter

	switch useFormatter {
	case FormatDefault:
		formatter = new(log.TextFormatter)
	case FormatPlain:
		formatter = &log.TextFormatter{
			DisableColors:          true,
			DisableLevelTruncation: false,
			DisableSorting:         true,
			ForceColors:            false,
			FullTimestamp:          true,
		}
	case FormatJSON:
		formatter = &log.JSONFormatter{
			DisableTimestamp: false,
		}
	default:
		return nil, errors.Errorf("unknown formatter configuration: %s", useFormatter)
	}

	return formatter, nil
}

// Level picks the log level from the verbosity flags. Debug wins over
// verbose.
func Level(verbose, debug bool) log.Level {
	switch {
	case debug:
		return log.TraceLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Apply sets the formatter and level of logger.
func Apply(logger *log.Logger, useFormatter string, verbose, debug bool) error {
	formatter, err := Configure(useFormatter)
	if err != nil {
		return err
	}

	logger.SetFormatter(formatter)
	logger.SetLevel(Level(verbose, debug))

	return nil
}
