package initializer

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("stream", "initializer")
