package main

import (
	"context"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"glow.dev.maio.me/seanj/srvany/initializer"
	"glow.dev.maio.me/seanj/srvany/internal/version"
)

var log = logrus.WithField("stream", "main")

type argsT struct {
	initializer.Config
}

func (argsT) Version() string {
	return version.Version
}

func (argsT) Description() string {
	return "srvany runs an arbitrary executable as a managed service, restarting it on exit when configured to."
}

func main() {
	var args = argsT{}
	arg.MustParse(&args)

	config := &args.Config
	if err := config.ValidateAndSetDefaults(); err != nil {
		log.WithError(err).Fatalf("Error validating configuration")
	}

	logFile, err := initializer.ConfigureLogging(config)
	if err != nil {
		log.WithError(err).Fatalf("Error configuring logging")
	}

	err = initializer.Run(context.Background(), config)
	logFile.Close()

	if err != nil {
		log.WithError(err).Errorf("Supervisor stopped with an error")
		os.Exit(1)
	}
}
