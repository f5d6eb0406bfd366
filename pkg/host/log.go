package host

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("stream", "host")
