package supervise

import (
	"testing"
)

func TestLaunchConfig(t *testing.T) {
	expectName := "ls"
	expectStr := "/bin/ls -L /directory"

	cfg := &LaunchConfig{
		ExecutablePath: "/bin/ls",
		Arguments:      "-L /directory",
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected cfg.Validate() to pass, got: %s", err)
	}

	if cmdName := cfg.Name(); cmdName != expectName {
		t.Errorf(
			"expected cfg.Name() to return '%s', got: %s",
			expectName,
			cmdName,
		)
	}

	if cmdStr := cfg.CommandString(); cmdStr != expectStr {
		t.Errorf(
			"expected cfg.CommandString() to return '%v', got: %v",
			expectStr,
			cmdStr,
		)
	}
}

func TestLaunchConfigRequiresExecutable(t *testing.T) {
	cfg := &LaunchConfig{ExecutablePath: "  "}

	if err := cfg.Validate(); err != ErrNoExecutable {
		t.Errorf("expected ErrNoExecutable, got: %v", err)
	}
}

func TestLaunchConfigEnviron(t *testing.T) {
	inherit := &LaunchConfig{ExecutablePath: "/bin/true"}
	if env := inherit.Environ(); env != nil {
		t.Errorf("expected nil environment when inheriting, got: %#v", env)
	}

	cleared := &LaunchConfig{ExecutablePath: "/bin/true", Environment: []EnvPair{}}
	if env := cleared.Environ(); env == nil || len(env) != 0 {
		t.Errorf("expected empty non-nil environment, got: %#v", env)
	}

	replaced := &LaunchConfig{
		ExecutablePath: "/bin/true",
		Environment:    []EnvPair{{"A", "1"}, {"B", "x=y"}, {"A", "2"}},
	}

	env := replaced.Environ()
	expect := []string{"A=1", "B=x=y", "A=2"}
	if len(env) != len(expect) {
		t.Fatalf("expected %v, got %v", expect, env)
	}

	for i := range expect {
		if env[i] != expect[i] {
			t.Errorf("entry %d: expected `%s`, got `%s`", i, expect[i], env[i])
		}
	}
}
