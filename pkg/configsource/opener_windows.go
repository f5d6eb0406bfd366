//go:build windows

package configsource

// DefaultOpener reads the service registry parameters, or YAML files from
// dir when one is given.
func DefaultOpener(dir string) Opener {
	if dir != "" {
		return FileOpener(dir)
	}

	return RegistryOpener
}
