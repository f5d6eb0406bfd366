package configsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"

	"glow.dev.maio.me/seanj/srvany/pkg/supervise"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("could not write %s: %s", name, err)
	}
}

func TestFileStoreLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "web.yaml", `
Application: /usr/local/bin/web
AppDirectory: /srv/web
AppParameters: --listen :8080 --name "my server"
AppEnvironment:
  - HOME=/srv/web
  - BROKEN
RestartOnExit: 1
`)

	cfg, err := New(FileOpener(dir)).Load("web")
	assert.NilError(t, err)

	want := &supervise.LaunchConfig{
		ExecutablePath:   "/usr/local/bin/web",
		WorkingDirectory: "/srv/web",
		Arguments:        `--listen :8080 --name "my server"`,
		Environment:      []supervise.EnvPair{{Key: "HOME", Value: "/srv/web"}},
		RestartOnExit:    true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("unexpected launch configuration (-want +got):\n%s", diff)
	}
}

func TestFileStoreDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultsFile, `
AppDirectory: /srv/shared
AppEnvironment:
  - SHARED=1
RestartOnExit: 1
`)
	writeFile(t, dir, "worker.yaml", `
Application: /usr/local/bin/worker
AppDirectory: /srv/worker
`)

	cfg, err := New(FileOpener(dir)).Load("worker")
	assert.NilError(t, err)

	assert.Equal(t, cfg.WorkingDirectory, "/srv/worker")
	assert.Assert(t, cfg.RestartOnExit)
	assert.DeepEqual(t, cfg.Environment, []supervise.EnvPair{{Key: "SHARED", Value: "1"}})
}

func TestFileStoreMissingServiceFile(t *testing.T) {
	_, err := New(FileOpener(t.TempDir())).Load("ghost")
	assert.Assert(t, errors.Is(err, ErrMissing), "expected ErrMissing, got %v", err)
}

func TestFileStoreTypeMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "odd.yaml", `
Application: /bin/odd
AppParameters: [not, a, string]
AppEnvironment: NOT_A_LIST=1
RestartOnExit: yes
`)

	store, err := FileOpener(dir)("odd")
	assert.NilError(t, err)

	_, err = store.GetString(KeyAppParameters)
	assert.Assert(t, err != nil && !errors.Is(err, ErrNotExist))

	_, err = store.GetStrings(KeyAppEnvironment)
	assert.Assert(t, err != nil && !errors.Is(err, ErrNotExist))

	_, err = store.GetInteger(KeyRestartOnExit)
	assert.Assert(t, err != nil && !errors.Is(err, ErrNotExist))

	_, err = store.GetString(KeyAppDirectory)
	assert.Assert(t, errors.Is(err, ErrNotExist))

	cfg, err := New(FileOpener(dir)).Load("odd")
	assert.NilError(t, err)
	assert.Equal(t, cfg.Arguments, "")
	assert.Assert(t, cfg.Environment == nil)
	assert.Assert(t, !cfg.RestartOnExit)
}

func TestFileStoreKeepsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultsFile, `
AppDirectory: /srv/shared
AppParameters: --debug
AppEnvironment:
  - LEAK=1
RestartOnExit: 1
`)
	writeFile(t, dir, "isolated.yaml", `
Application: /usr/local/bin/isolated
AppDirectory:
AppParameters: ""
AppEnvironment: []
RestartOnExit: 0
`)

	cfg, err := New(FileOpener(dir)).Load("isolated")
	assert.NilError(t, err)

	want := &supervise.LaunchConfig{
		ExecutablePath:   "/usr/local/bin/isolated",
		WorkingDirectory: "/srv/shared",
		Arguments:        "",
		Environment:      []supervise.EnvPair{},
		RestartOnExit:    false,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("unexpected launch configuration (-want +got):\n%s", diff)
	}
	assert.Assert(t, !cfg.InheritsEnvironment())
}
