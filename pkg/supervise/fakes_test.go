package supervise

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
)

type fakeSource struct {
	cfg   *LaunchConfig
	err   error
	loads int
}

func (f *fakeSource) Load(service string) (*LaunchConfig, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}

	return f.cfg, nil
}

type fakeChild struct {
	sync.Mutex

	pid     int
	exited  bool
	code    int
	kills   int
	killErr error
}

func (c *fakeChild) Pid() int { return c.pid }

func (c *fakeChild) Exited() (int, bool) {
	c.Lock()
	defer c.Unlock()

	return c.code, c.exited
}

func (c *fakeChild) Kill() error {
	c.Lock()
	defer c.Unlock()

	c.kills++
	if c.killErr != nil {
		return c.killErr
	}

	c.exited = true
	c.code = -1

	return nil
}

func (c *fakeChild) exit(code int) {
	c.Lock()
	defer c.Unlock()

	c.exited = true
	c.code = code
}

func (c *fakeChild) killCount() int {
	c.Lock()
	defer c.Unlock()

	return c.kills
}

type fakeLauncher struct {
	sync.Mutex

	attempts   int
	children   []*fakeChild
	spawnTimes []time.Time

	// failFrom makes every attempt with a 1-based index >= failFrom fail.
	failFrom int

	// onSpawn runs for each child before it is returned.
	onSpawn func(index int, child *fakeChild)
}

func (l *fakeLauncher) Spawn(ctx context.Context, cfg *LaunchConfig) (Child, error) {
	l.Lock()
	defer l.Unlock()

	l.attempts++
	if l.failFrom > 0 && l.attempts >= l.failFrom {
		return nil, &SpawnError{Path: cfg.ExecutablePath, Err: errors.New("permission denied")}
	}

	child := &fakeChild{pid: 1000 + l.attempts}
	if l.onSpawn != nil {
		l.onSpawn(len(l.children), child)
	}

	l.children = append(l.children, child)
	l.spawnTimes = append(l.spawnTimes, time.Now())

	return child, nil
}

func (l *fakeLauncher) spawned() int {
	l.Lock()
	defer l.Unlock()

	return len(l.children)
}

func (l *fakeLauncher) attempted() int {
	l.Lock()
	defer l.Unlock()

	return l.attempts
}

func (l *fakeLauncher) child(i int) *fakeChild {
	l.Lock()
	defer l.Unlock()

	return l.children[i]
}

type statusRecorder struct {
	sync.Mutex

	states []State
}

func (r *statusRecorder) ReportStatus(state State) {
	r.Lock()
	defer r.Unlock()

	r.states = append(r.states, state)
}

func (r *statusRecorder) reported() []State {
	r.Lock()
	defer r.Unlock()

	return append([]State(nil), r.states...)
}

func (r *statusRecorder) count(state State) int {
	n := 0
	for _, s := range r.reported() {
		if s == state {
			n++
		}
	}

	return n
}

// waitFor polls cond until it holds or the timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %s", timeout)
		}

		time.Sleep(2 * time.Millisecond)
	}
}
