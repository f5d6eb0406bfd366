//go:build linux

package initializer

import (
	"os"

	reaper "github.com/ramr/go-reaper"
)

// startReaper collects orphaned grandchildren when srvany is the init
// process of a container.
func startReaper() {
	if os.Getpid() != 1 {
		log.Debugf("Not running as pid 1, process reaper not started")
		return
	}

	log.Info("Starting process reaper")
	go reaper.Reap()
}
