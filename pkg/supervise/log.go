package supervise

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("stream", "supervise")
