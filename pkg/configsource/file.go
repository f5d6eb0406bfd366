package configsource

import (
	"os"
	"path/filepath"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultsFile holds parameters shared by every service in a directory.
const DefaultsFile = "defaults.yaml"

// FileStore is a Store backed by a YAML document, one per service:
//
//	Application: /usr/local/bin/server
//	AppDirectory: /var/lib/server
//	AppParameters: --listen :8080 --name "my server"
//	AppEnvironment:
//	  - HOME=/var/lib/server
//	RestartOnExit: 1
type FileStore struct {
	path   string
	values map[string]interface{}
}

var _ Store = (*FileStore)(nil)

// FileOpener opens `<dir>/<service>.yaml`. Parameters the service file omits
// (or leaves null) are taken from `<dir>/defaults.yaml` when that file exists.
// Explicit values, including empty lists, empty strings and zero, are kept.
func FileOpener(dir string) Opener {
	return func(service string) (Store, error) {
		path := filepath.Join(dir, service+".yaml")

		values, err := readValues(path)
		if err != nil {
			return nil, err
		}

		defaultsPath := filepath.Join(dir, DefaultsFile)
		defaults, err := readValues(defaultsPath)
		switch {
		case err == nil:
			if err := mergo.Merge(&values, omitted(values, defaults)); err != nil {
				return nil, errors.Wrapf(err, "could not merge `%s` into `%s`", defaultsPath, path)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}

		return &FileStore{path: path, values: values}, nil
	}
}

// omitted returns the defaults for keys absent or null in values. Null keys
// are dropped from values so the merge can fill them.
func omitted(values, defaults map[string]interface{}) map[string]interface{} {
	fill := make(map[string]interface{}, len(defaults))
	for key, value := range defaults {
		if current, ok := values[key]; ok && current != nil {
			continue
		}

		delete(values, key)
		fill[key] = value
	}

	return fill
}

func readValues(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read `%s`", path)
	}

	values := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "could not parse `%s`", path)
	}

	return values, nil
}

func (f *FileStore) lookup(name string) (interface{}, error) {
	value, ok := f.values[name]
	if !ok || value == nil {
		return nil, errors.Wrapf(ErrNotExist, "%s in `%s`", name, f.path)
	}

	return value, nil
}

// GetString reads a scalar string parameter.
func (f *FileStore) GetString(name string) (string, error) {
	value, err := f.lookup(name)
	if err != nil {
		return "", err
	}

	str, ok := value.(string)
	if !ok {
		return "", errors.Errorf("%s in `%s` is a %T, not a string", name, f.path, value)
	}

	return str, nil
}

// GetStrings reads a list of strings.
func (f *FileStore) GetStrings(name string) ([]string, error) {
	value, err := f.lookup(name)
	if err != nil {
		return nil, err
	}

	items, ok := value.([]interface{})
	if !ok {
		return nil, errors.Errorf("%s in `%s` is a %T, not a list", name, f.path, value)
	}

	strs := make([]string, 0, len(items))
	for idx, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, errors.Errorf("%s[%d] in `%s` is a %T, not a string", name, idx, f.path, item)
		}

		strs = append(strs, str)
	}

	return strs, nil
}

// GetInteger reads a non-negative integer parameter.
func (f *FileStore) GetInteger(name string) (uint64, error) {
	value, err := f.lookup(name)
	if err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case int:
		if v >= 0 {
			return uint64(v), nil
		}
	case uint64:
		return v, nil
	}

	return 0, errors.Errorf("%s in `%s` is not a non-negative integer: %v", name, f.path, value)
}

// Close is a no-op; the document is read in full when opened.
func (f *FileStore) Close() error {
	return nil
}
