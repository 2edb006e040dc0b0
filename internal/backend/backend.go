// Package backend turns dialog requests into platform calls: subprocess
// tools on Linux and BSD, osascript on macOS, and the Win32 dialogs on
// Windows. Selection happens per dispatch so a long-running process
// follows changes to the desktop session.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/runger/nativedialog/internal/dialog"
	dlog "github.com/runger/nativedialog/internal/log"
)

// DefaultMessageWidth is the zenity message dialog width in pixels.
const DefaultMessageWidth = 400

// Invocation is one call into a backend.
type Invocation struct {
	ID      string
	Request dialog.Request
	// Target is the path the chooser is pre-filled with, already resolved.
	Target string
}

// Result is what the user did. Cancellation is a normal result.
type Result struct {
	Paths     []string
	Confirmed bool
	Cancelled bool
}

// ProgressHandle controls a live progress dialog.
type ProgressHandle interface {
	SetProgress(percent float64) error
	SetText(text string) error
	// CheckCancelled polls without blocking.
	CheckCancelled() (bool, error)
	Close() error
}

// Backend presents dialogs through one platform facility.
type Backend interface {
	Name() string
	Show(inv Invocation) (Result, error)
	Progress(inv Invocation) (ProgressHandle, error)
}

// Options configures the backend built from a capability.
type Options struct {
	Env Env
	// ExtraArgs are prepended to every invocation of the tool.
	ExtraArgs    map[Tool][]string
	MessageWidth int
	Logger       *slog.Logger
}

// New builds the backend for a selected capability.
func New(c *Capability, opts Options) (Backend, error) {
	if opts.MessageWidth <= 0 {
		opts.MessageWidth = DefaultMessageWidth
	}
	if opts.Logger == nil {
		opts.Logger = dlog.Discard()
	}
	p := proc{cap: c, env: opts.Env, extra: opts.ExtraArgs[c.Tool]}

	switch c.Tool {
	case Zenity:
		return &zenity{proc: p, width: opts.MessageWidth}, nil
	case KDialog:
		return &kdialog{proc: p}, nil
	case Yad:
		return &yad{proc: p, width: opts.MessageWidth}, nil
	case Osascript:
		return &osascript{proc: p}, nil
	case Native:
		return newNative(opts)
	default:
		return nil, fmt.Errorf("unknown backend tool: %d", int(c.Tool))
	}
}
