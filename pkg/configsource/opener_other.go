//go:build !windows

package configsource

// DefaultConfigDir is where service parameter files live when no directory
// is configured.
const DefaultConfigDir = "/etc/srvany"

// DefaultOpener reads YAML parameter files from dir.
func DefaultOpener(dir string) Opener {
	if dir == "" {
		dir = DefaultConfigDir
	}

	return FileOpener(dir)
}
