//go:build windows

package configsource

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

// parametersKey is the per-service key under HKEY_LOCAL_MACHINE.
const parametersKey = `SYSTEM\CurrentControlSet\Services\%s\Parameters`

// registryStore reads service parameters from the Windows registry.
type registryStore struct {
	path string
	key  registry.Key
}

var _ Store = (*registryStore)(nil)

// RegistryOpener opens HKLM\SYSTEM\CurrentControlSet\Services\<service>\Parameters.
func RegistryOpener(service string) (Store, error) {
	path := fmt.Sprintf(parametersKey, service)

	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open HKLM\\%s", path)
	}

	return &registryStore{path: path, key: key}, nil
}

// GetString reads a REG_SZ or REG_EXPAND_SZ value. Expandable strings are
// expanded against the supervisor's environment.
func (r *registryStore) GetString(name string) (string, error) {
	value, valtype, err := r.key.GetStringValue(name)
	if err != nil {
		return "", r.translate(name, err)
	}

	if valtype == registry.EXPAND_SZ {
		expanded, err := registry.ExpandString(value)
		if err != nil {
			return "", errors.Wrapf(err, "could not expand %s", name)
		}

		return expanded, nil
	}

	return value, nil
}

// GetStrings reads a REG_MULTI_SZ value.
func (r *registryStore) GetStrings(name string) ([]string, error) {
	values, _, err := r.key.GetStringsValue(name)
	if err != nil {
		return nil, r.translate(name, err)
	}

	return values, nil
}

// GetInteger reads a REG_DWORD or REG_QWORD value.
func (r *registryStore) GetInteger(name string) (uint64, error) {
	value, _, err := r.key.GetIntegerValue(name)
	if err != nil {
		return 0, r.translate(name, err)
	}

	return value, nil
}

func (r *registryStore) Close() error {
	return r.key.Close()
}

func (r *registryStore) translate(name string, err error) error {
	if err == registry.ErrNotExist {
		return errors.Wrapf(ErrNotExist, "%s under HKLM\\%s", name, r.path)
	}

	return errors.Wrapf(err, "could not read %s under HKLM\\%s", name, r.path)
}
