package configsource

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("stream", "configsource")
