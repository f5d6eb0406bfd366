package configsource

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"

	"glow.dev.maio.me/seanj/srvany/pkg/supervise"
)

// memStore is an in-memory Store. Values of the wrong Go type behave like
// unreadable parameters.
type memStore struct {
	values map[string]interface{}
	closed bool
}

func (m *memStore) get(name string) (interface{}, error) {
	value, ok := m.values[name]
	if !ok {
		return nil, ErrNotExist
	}

	return value, nil
}

func (m *memStore) GetString(name string) (string, error) {
	value, err := m.get(name)
	if err != nil {
		return "", err
	}

	str, ok := value.(string)
	if !ok {
		return "", errors.Errorf("%s: wrong type", name)
	}

	return str, nil
}

func (m *memStore) GetStrings(name string) ([]string, error) {
	value, err := m.get(name)
	if err != nil {
		return nil, err
	}

	strs, ok := value.([]string)
	if !ok {
		return nil, errors.Errorf("%s: wrong type", name)
	}

	return strs, nil
}

func (m *memStore) GetInteger(name string) (uint64, error) {
	value, err := m.get(name)
	if err != nil {
		return 0, err
	}

	n, ok := value.(uint64)
	if !ok {
		return 0, errors.Errorf("%s: wrong type", name)
	}

	return n, nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

func memOpener(store *memStore, opens *int) Opener {
	return func(service string) (Store, error) {
		*opens++
		return store, nil
	}
}

func TestLoadFullConfiguration(t *testing.T) {
	store := &memStore{values: map[string]interface{}{
		KeyApplication:    `C:\bin\server.exe`,
		KeyAppDirectory:   `C:\data`,
		KeyAppParameters:  `--name "my server"`,
		KeyAppEnvironment: []string{"A=1", "B=x=y", "NOEQUALS", "=empty"},
		KeyRestartOnExit:  uint64(1),
	}}

	var opens int
	cfg, err := New(memOpener(store, &opens)).Load("svc")
	assert.NilError(t, err)

	want := &supervise.LaunchConfig{
		ExecutablePath:   `C:\bin\server.exe`,
		WorkingDirectory: `C:\data`,
		Arguments:        `--name "my server"`,
		Environment: []supervise.EnvPair{
			{Key: "A", Value: "1"},
			{Key: "B", Value: "x=y"},
			{Key: "", Value: "empty"},
		},
		RestartOnExit: true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("unexpected launch configuration (-want +got):\n%s", diff)
	}

	assert.Assert(t, store.closed, "store was not closed")
	assert.Equal(t, opens, 1)
}

func TestLoadMinimalConfiguration(t *testing.T) {
	store := &memStore{values: map[string]interface{}{
		KeyApplication: "/usr/bin/server",
	}}

	var opens int
	cfg, err := New(memOpener(store, &opens)).Load("svc")
	assert.NilError(t, err)

	assert.Equal(t, cfg.WorkingDirectory, "")
	assert.Equal(t, cfg.Arguments, "")
	assert.Assert(t, cfg.Environment == nil, "absent environment must inherit")
	assert.Assert(t, !cfg.RestartOnExit)
}

func TestLoadEmptyEnvironmentClears(t *testing.T) {
	store := &memStore{values: map[string]interface{}{
		KeyApplication:    "/usr/bin/server",
		KeyAppEnvironment: []string{"NOEQUALS"},
	}}

	var opens int
	cfg, err := New(memOpener(store, &opens)).Load("svc")
	assert.NilError(t, err)
	assert.Assert(t, cfg.Environment != nil && len(cfg.Environment) == 0)
	assert.Assert(t, !cfg.InheritsEnvironment())
}

func TestLoadRestartFlag(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"one", uint64(1), true},
		{"zero", uint64(0), false},
		{"two", uint64(2), false},
		{"malformed", "1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{values: map[string]interface{}{
				KeyApplication:   "/usr/bin/server",
				KeyRestartOnExit: tc.value,
			}}

			var opens int
			cfg, err := New(memOpener(store, &opens)).Load("svc")
			assert.NilError(t, err)
			assert.Equal(t, cfg.RestartOnExit, tc.want)
		})
	}
}

func TestLoadMissingApplication(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"absent":     {KeyAppDirectory: "/tmp"},
		"unreadable": {KeyApplication: uint64(7)},
		"empty":      {KeyApplication: "   "},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			var opens int
			_, err := New(memOpener(&memStore{values: values}, &opens)).Load("svc")
			assert.Assert(t, errors.Is(err, ErrMissing), "expected ErrMissing, got %v", err)
		})
	}
}

func TestLoadUnopenableStore(t *testing.T) {
	open := func(service string) (Store, error) {
		return nil, errors.New("access denied")
	}

	_, err := New(open).Load("svc")
	assert.Assert(t, errors.Is(err, ErrMissing), "expected ErrMissing, got %v", err)
	assert.ErrorContains(t, err, "access denied")
}

func TestLoadDoesNotCache(t *testing.T) {
	store := &memStore{values: map[string]interface{}{KeyApplication: "/bin/a"}}

	var opens int
	source := New(memOpener(store, &opens))

	first, err := source.Load("svc")
	assert.NilError(t, err)

	store.values[KeyApplication] = "/bin/b"
	second, err := source.Load("svc")
	assert.NilError(t, err)

	assert.Equal(t, first.ExecutablePath, "/bin/a")
	assert.Equal(t, second.ExecutablePath, "/bin/b")
	assert.Equal(t, opens, 2)
}
