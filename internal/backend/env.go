package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sys/execabs"
)

// Exec is the captured result of a finished process.
type Exec struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int // -1 when the process was terminated by a signal
}

// Child is a running backend process whose stdin stays open.
type Child interface {
	io.Writer
	Done() <-chan struct{}
	// ExitCode is valid once Done is closed.
	ExitCode() int
	Kill() error
}

// Env is everything the selector and the subprocess backends read from the
// outside world. Tests substitute fakes for each field.
type Env struct {
	GOOS     string
	Getenv   func(string) string
	LookPath func(string) (string, error)
	Run      func(ctx context.Context, path string, args ...string) (Exec, error)
	Start    func(path string, args ...string) (Child, error)
}

// SystemEnv reads the real process environment and spawns real processes.
func SystemEnv() Env {
	return Env{
		GOOS:     runtime.GOOS,
		Getenv:   os.Getenv,
		LookPath: execabs.LookPath,
		Run:      runProcess,
		Start:    startProcess,
	}
}

// HasDisplay reports whether a graphical session is reachable.
func (e Env) HasDisplay() bool {
	return e.Getenv("DISPLAY") != "" || e.Getenv("WAYLAND_DISPLAY") != ""
}

// Desktops returns the entries of XDG_CURRENT_DESKTOP.
func (e Env) Desktops() []string {
	raw := e.Getenv("XDG_CURRENT_DESKTOP")
	if raw == "" {
		return nil
	}
	var out []string
	for _, d := range strings.Split(raw, ":") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// IsKDE reports whether the session identifies as KDE.
func (e Env) IsKDE() bool {
	for _, d := range e.Desktops() {
		if strings.EqualFold(d, "KDE") {
			return true
		}
	}
	return false
}

func runProcess(ctx context.Context, path string, args ...string) (Exec, error) {
	cmd := execabs.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Exec{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *execabs.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

type processChild struct {
	cmd   *execabs.Cmd
	stdin io.WriteCloser
	done  chan struct{}
	code  atomic.Int32
}

func startProcess(path string, args ...string) (Child, error) {
	cmd := execabs.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	c := &processChild{cmd: cmd, stdin: stdin, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		c.code.Store(int32(cmd.ProcessState.ExitCode()))
		close(c.done)
	}()
	return c, nil
}

func (c *processChild) Write(p []byte) (int, error) { return c.stdin.Write(p) }

func (c *processChild) Done() <-chan struct{} { return c.done }

func (c *processChild) ExitCode() int { return int(c.code.Load()) }

func (c *processChild) Kill() error {
	_ = c.stdin.Close()
	if err := c.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
