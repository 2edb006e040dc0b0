package backend

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// fakeEnv records invocations and answers them from a script.
type fakeEnv struct {
	mu      sync.Mutex
	goos    string
	vars    map[string]string
	paths   map[string]string // executable -> path
	version string            // stdout of --version
	results []Exec            // consumed in order by non-version runs
	runErr  error
	calls   [][]string
	child   *fakeChild
}

func newFakeEnv(goos string) *fakeEnv {
	return &fakeEnv{
		goos:  goos,
		vars:  map[string]string{},
		paths: map[string]string{},
	}
}

func (f *fakeEnv) with(vars map[string]string, tools ...string) *fakeEnv {
	for k, v := range vars {
		f.vars[k] = v
	}
	for _, tool := range tools {
		f.paths[tool] = "/usr/bin/" + tool
	}
	return f
}

func (f *fakeEnv) env() Env {
	return Env{
		GOOS:   f.goos,
		Getenv: func(k string) string { return f.vars[k] },
		LookPath: func(name string) (string, error) {
			if p, ok := f.paths[name]; ok {
				return p, nil
			}
			return "", exec.ErrNotFound
		},
		Run:   f.run,
		Start: f.start,
	}
}

func (f *fakeEnv) run(_ context.Context, path string, args ...string) (Exec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{path}, args...))
	if len(args) == 1 && args[0] == "--version" {
		return Exec{Stdout: []byte(f.version)}, nil
	}
	if f.runErr != nil {
		return Exec{}, f.runErr
	}
	if len(f.results) == 0 {
		return Exec{}, nil
	}
	res := f.results[0]
	f.results = f.results[1:]
	return res, nil
}

func (f *fakeEnv) start(path string, args ...string) (Child, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{path}, args...))
	if f.runErr != nil {
		return nil, f.runErr
	}
	f.child = newFakeChild()
	return f.child, nil
}

func (f *fakeEnv) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeEnv) versionProbes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) == 2 && c[1] == "--version" {
			n++
		}
	}
	return n
}

type fakeChild struct {
	mu       sync.Mutex
	written  strings.Builder
	done     chan struct{}
	code     int
	killed   int
	writeErr error
}

func newFakeChild() *fakeChild {
	return &fakeChild{done: make(chan struct{})}
}

func (c *fakeChild) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	return c.written.Write(p)
}

func (c *fakeChild) Done() <-chan struct{} { return c.done }

func (c *fakeChild) ExitCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}

func (c *fakeChild) exit(code int) {
	c.mu.Lock()
	c.code = code
	c.mu.Unlock()
	close(c.done)
}

func (c *fakeChild) Kill() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.killed++
	return nil
}

func (c *fakeChild) output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.written.String()
}

var errSpawn = errors.New("spawn failed")

// testBackend builds a backend over a fake env with a fixed version.
func testBackend(tool Tool, version string, f *fakeEnv) Backend {
	c := FixedCapability(tool, "/usr/bin/"+tool.String(), version)
	b, err := New(c, Options{Env: f.env()})
	if err != nil {
		panic(err)
	}
	return b
}
