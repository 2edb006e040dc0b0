package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/runger/nativedialog/internal/dialog"
)

// proc is the subprocess plumbing shared by the command-line backends.
type proc struct {
	cap   *Capability
	env   Env
	extra []string
}

func (p proc) Name() string { return p.cap.Tool.String() }

func (p proc) argv(args []string) []string {
	out := make([]string, 0, len(p.extra)+len(args))
	out = append(out, p.extra...)
	return append(out, args...)
}

func (p proc) run(args []string) (Exec, error) {
	res, err := p.env.Run(context.Background(), p.cap.Path, p.argv(args)...)
	if err != nil {
		return res, dialog.IOError(p.Name(), err)
	}
	return res, nil
}

// outcome applies the exit-code contract: 0 is success, the tool's cancel
// codes are a dismissal, a signal is Killed, anything else is an error.
func (p proc) outcome(res Exec) (cancelled bool, err error) {
	switch {
	case res.ExitCode == 0:
		return false, nil
	case res.ExitCode < 0:
		return false, dialog.Killed(p.cap.Path)
	case p.cap.Tool.isCancel(res):
		return true, nil
	default:
		msg := fmt.Sprintf("exit status %d", res.ExitCode)
		if stderr := strings.TrimSpace(string(res.Stderr)); stderr != "" {
			msg += ": " + stderr
		}
		return false, dialog.Implementation(p.Name(), msg)
	}
}

// show runs a file or message invocation and interprets its output.
func (p proc) show(kind dialog.Kind, args []string) (Result, error) {
	res, err := p.run(args)
	if err != nil {
		return Result{}, err
	}
	cancelled, err := p.outcome(res)
	if err != nil {
		return Result{}, err
	}
	if cancelled {
		return Result{Cancelled: true}, nil
	}

	switch kind {
	case dialog.Alert:
		return Result{}, nil
	case dialog.Confirm:
		return Result{Confirmed: true}, nil
	}

	paths, err := parsePaths(p.Name(), res.Stdout, kind == dialog.OpenMultipleFile)
	if err != nil {
		return Result{}, err
	}
	if len(paths) == 0 {
		return Result{Cancelled: true}, nil
	}
	return Result{Paths: paths}, nil
}

// parsePaths splits chooser output. Multi-selection is newline separated
// with empty segments dropped; a single selection keeps inner whitespace.
func parsePaths(op string, out []byte, multiple bool) ([]string, error) {
	if !utf8.Valid(out) {
		return nil, dialog.InvalidString(op, "output is not valid UTF-8")
	}
	text := string(out)

	if !multiple {
		path := strings.TrimRight(text, "\r\n")
		if path == "" {
			return nil, nil
		}
		return []string{path}, nil
	}

	var paths []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSuffix(line, "\r"); line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

// splitTarget breaks a pre-fill path into a start directory and file name
// for backends that take them separately.
func splitTarget(target string) (dir, name string) {
	if target == "" {
		return "", ""
	}
	if strings.HasSuffix(target, "/") || strings.HasSuffix(target, string(filepath.Separator)) {
		return filepath.Clean(target), ""
	}
	dir, name = filepath.Split(target)
	if dir != "" {
		dir = filepath.Clean(dir)
	}
	return dir, name
}

func levelIcon(level dialog.Level) string {
	switch level {
	case dialog.LevelWarning:
		return "dialog-warning"
	case dialog.LevelError:
		return "dialog-error"
	default:
		return "dialog-information"
	}
}
