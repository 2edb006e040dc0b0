package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/runger/nativedialog/internal/dialog"
	dlog "github.com/runger/nativedialog/internal/log"
)

// ErrPreferredUnavailable is returned when the configured backend cannot run here.
var ErrPreferredUnavailable = errors.New("preferred dialog backend not available")

// SelectorOptions configures a Selector.
type SelectorOptions struct {
	// Preferred is "auto" (or empty) to walk the candidate order, or a tool
	// name that must be available.
	Preferred      string
	VersionTimeout time.Duration
	Logger         *slog.Logger
}

// Selector picks the backend for one dispatch. It keeps no state between
// calls to Select; every call re-reads the environment.
type Selector struct {
	env  Env
	opts SelectorOptions
}

// NewSelector creates a selector over env.
func NewSelector(env Env, opts SelectorOptions) *Selector {
	if opts.Logger == nil {
		opts.Logger = dlog.Discard()
	}
	return &Selector{env: env, opts: opts}
}

// Candidates returns the tools to try, in priority order, for env.
//
// Windows and macOS have a single facility each. Elsewhere a graphical
// display is required; a KDE session prefers kdialog, anything else
// prefers zenity, and yad is the last fallback.
func Candidates(env Env) ([]Tool, error) {
	switch env.GOOS {
	case "windows":
		return []Tool{Native}, nil
	case "darwin":
		return []Tool{Osascript}, nil
	}

	if !env.HasDisplay() {
		return nil, dialog.NoImplementation("no graphical display (DISPLAY and WAYLAND_DISPLAY are unset)")
	}
	if env.IsKDE() {
		return []Tool{KDialog, Zenity, Yad}, nil
	}
	return []Tool{Zenity, KDialog, Yad}, nil
}

// Select resolves the backend capability for one dispatch.
func (s *Selector) Select() (*Capability, error) {
	candidates, err := Candidates(s.env)
	if err != nil {
		return nil, err
	}

	if s.opts.Preferred != "" && s.opts.Preferred != "auto" {
		tool, err := ParseTool(s.opts.Preferred)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPreferredUnavailable, err)
		}
		if !containsTool(candidates, tool) {
			return nil, fmt.Errorf("%w: %s is not supported on %s", ErrPreferredUnavailable, tool, s.env.GOOS)
		}
		path, ok := s.lookup(tool)
		if !ok {
			return nil, fmt.Errorf("%w: %s not found in PATH", ErrPreferredUnavailable, tool)
		}
		return s.capability(tool, path, candidates), nil
	}

	for _, tool := range candidates {
		if path, ok := s.lookup(tool); ok {
			return s.capability(tool, path, candidates), nil
		}
	}

	return nil, dialog.NoImplementation(fmt.Sprintf("none of %v found in PATH", toolNames(candidates)))
}

// Status describes one tool for diagnostics.
type Status struct {
	Tool      Tool
	Path      string
	Available bool
	Candidate bool // part of the candidate order in this environment
}

// Probe reports the availability of every known tool without selecting one.
func (s *Selector) Probe() []Status {
	candidates, _ := Candidates(s.env)
	out := make([]Status, 0, len(Tools))
	for _, tool := range Tools {
		path, ok := s.lookup(tool)
		if tool == Native && s.env.GOOS != "windows" {
			ok = false
		}
		out = append(out, Status{
			Tool:      tool,
			Path:      path,
			Available: ok,
			Candidate: containsTool(candidates, tool),
		})
	}
	return out
}

// Capability builds the capability for tool without selecting it, for
// diagnostics. It reports false when the tool is unavailable here.
func (s *Selector) Capability(tool Tool) (*Capability, bool) {
	if tool == Native && s.env.GOOS != "windows" {
		return nil, false
	}
	path, ok := s.lookup(tool)
	if !ok {
		return nil, false
	}
	return newCapability(tool, path, s.env, s.opts.VersionTimeout, s.opts.Logger), true
}

func (s *Selector) lookup(tool Tool) (string, bool) {
	if tool == Native {
		return "", true
	}
	path, err := s.env.LookPath(tool.Executable())
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

func (s *Selector) capability(tool Tool, path string, candidates []Tool) *Capability {
	dlog.LogBackendSelected(s.opts.Logger, tool.String(), path, toolNames(candidates))
	return newCapability(tool, path, s.env, s.opts.VersionTimeout, s.opts.Logger)
}

func containsTool(tools []Tool, t Tool) bool {
	for _, x := range tools {
		if x == t {
			return true
		}
	}
	return false
}

func toolNames(tools []Tool) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.String()
	}
	return names
}
