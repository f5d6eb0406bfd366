//go:build !linux

package initializer

func startReaper() {
	log.Debugf("Process reaper is only available on Linux")
}
