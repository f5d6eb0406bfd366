package initializer

import (
	"time"

	"github.com/pkg/errors"

	"glow.dev.maio.me/seanj/srvany/pkg/logformatter"
)

const (
	defaultDebug                     bool   = false
	defaultForwardOutput             bool   = false
	defaultLogFormat                 string = logformatter.FormatDefault
	defaultNoReaper                  bool   = false
	defaultPollInterval              string = "1s"
	defaultRestartDelay              string = "1s"
	defaultTelemetryCollectorGolang  bool   = false
	defaultTelemetryCollectorProcess bool   = false
	defaultVerbose                   bool   = false
)

// Config is the configuration for `srvany` as a whole
// and can be populated by an embedding application or populated
// with arguments from the command line and/or environment variables.
type Config struct {
	Service string `arg:"positional" help:"Name of the service whose parameters are loaded"`

	ConfigDir     string `arg:"--config-dir,env:SRVANY_CONFIG_DIR" help:"Directory holding <service>.yaml parameter files; Windows reads the service registry key when unset"`
	ChildLog      string `arg:"--child-log,env:SRVANY_CHILD_LOG" help:"File that also receives forwarded child output"`
	Debug         *bool  `arg:"-D,--debug,env:SRVANY_DEBUG" help:"Enable super verbose debugging output, which may print the child environment"`
	ForwardOutput *bool  `arg:"--forward-output,env:SRVANY_FORWARD_OUTPUT" help:"Forward child stdout and stderr into the log"`
	LockDir       string `arg:"--lock-dir,env:SRVANY_LOCK_DIR" help:"Directory for the per-service lock file in console mode"`
	LogFile       string `arg:"--log-file,env:SRVANY_LOG_FILE" help:"Append log output to this file instead of stderr"`
	LogFormat     string `arg:"--log-format,env:SRVANY_LOG_FORMAT" help:"Change the format used for logging [default, plain, json]"`
	NoReaper      *bool  `arg:"--without-reaper,env:SRVANY_NO_REAPER" help:"Disable the subprocess reaper"`
	PollInterval  string `arg:"--poll-interval,env:SRVANY_POLL_INTERVAL" help:"How often the child is checked for exit"`
	RestartDelay  string `arg:"--restart-delay,env:SRVANY_RESTART_DELAY" help:"Back-off taken before restarting an exited child"`
	Verbose       *bool  `arg:"-v,--verbose,env:SRVANY_VERBOSE" help:"Enable verbose debug logging"`

	TelemetryAddress          string `arg:"--telemetry-address,env:SRVANY_TELEMETRY_ADDR" help:"Address to expose Prometheus telemetry on. Disabled if blank."`
	TelemetryCollectorGolang  *bool  `arg:"--use-go-telemetry-collector,env:SRVANY_TELEMETRY_COLLECTOR_GOLANG" help:"Whether the Golang telemetry collector should be started."`
	TelemetryCollectorProcess *bool  `arg:"--use-process-telemetry-collector,env:SRVANY_TELEMETRY_COLLECTOR_PROCESS" help:"Whether the process telemetry collector should be started."`

	// PollIntervalDuration and RestartDelayDuration are the parsed forms,
	// filled in by ValidateAndSetDefaults.
	PollIntervalDuration time.Duration `arg:"-"`
	RestartDelayDuration time.Duration `arg:"-"`
}

// ValidateAndSetDefaults validates the arguments set inside of the
// configuration and fills in certain slots with defaults, if the values
// are unset.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Service == "" {
		return errors.New("a service name is required")
	}

	if c.Debug == nil {
		c.Debug = new(bool)
		*c.Debug = defaultDebug
	}

	if c.ForwardOutput == nil {
		c.ForwardOutput = new(bool)
		*c.ForwardOutput = defaultForwardOutput
	}

	if c.NoReaper == nil {
		c.NoReaper = new(bool)
		*c.NoReaper = defaultNoReaper
	}

	if c.Verbose == nil {
		c.Verbose = new(bool)
		*c.Verbose = defaultVerbose
	}

	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}

	if _, err := logformatter.Configure(c.LogFormat); err != nil {
		return errors.Wrap(err, "invalid log format")
	}

	if c.PollInterval == "" {
		c.PollInterval = defaultPollInterval
	}

	var err error
	c.PollIntervalDuration, err = parsePositiveDuration(c.PollInterval)
	if err != nil {
		return errors.Wrapf(err, "could not parse poll interval: `%s`", c.PollInterval)
	}

	if c.RestartDelay == "" {
		c.RestartDelay = defaultRestartDelay
	}

	c.RestartDelayDuration, err = parsePositiveDuration(c.RestartDelay)
	if err != nil {
		return errors.Wrapf(err, "could not parse restart delay: `%s`", c.RestartDelay)
	}

	if c.ChildLog != "" && !*c.ForwardOutput {
		log.Warnf("ChildLog is set without ForwardOutput, child output will not be captured!")
	}

	if c.TelemetryCollectorGolang == nil {
		c.TelemetryCollectorGolang = new(bool)
		*c.TelemetryCollectorGolang = defaultTelemetryCollectorGolang
	}

	if c.TelemetryCollectorProcess == nil {
		c.TelemetryCollectorProcess = new(bool)
		*c.TelemetryCollectorProcess = defaultTelemetryCollectorProcess
	}

	return nil
}

func parsePositiveDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	if d <= 0 {
		return 0, errors.Errorf("duration must be positive, got %s", d)
	}

	return d, nil
}
