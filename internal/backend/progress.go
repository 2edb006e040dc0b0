package backend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/runger/nativedialog/internal/dialog"
)

// pipeProgress drives zenity/yad --progress over stdin:
// "<percent>\n" moves the bar and "# <text>\n" replaces the label.
type pipeProgress struct {
	mu    sync.Mutex
	name  string
	child Child
}

func startPipeProgress(p proc, args []string) (ProgressHandle, error) {
	child, err := p.env.Start(p.cap.Path, p.argv(args)...)
	if err != nil {
		return nil, dialog.IOError(p.Name(), err)
	}
	return &pipeProgress{name: p.Name(), child: child}, nil
}

// cancelGrace bounds how long a failed write waits for the tool to be
// reaped before the failure is reported as an IO error.
var cancelGrace = 250 * time.Millisecond

// write sends one protocol line. A write that fails because the user
// cancelled (the tool exited non-zero) is dropped so that CheckCancelled
// reports the cancellation instead of a broken pipe.
func (h *pipeProgress) write(line string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.child.Write([]byte(line)); err != nil {
		if h.exitedWithFailure() {
			return nil
		}
		return dialog.IOError(h.name, err)
	}
	return nil
}

func (h *pipeProgress) exitedWithFailure() bool {
	timer := time.NewTimer(cancelGrace)
	defer timer.Stop()
	select {
	case <-h.child.Done():
		return h.child.ExitCode() != 0
	case <-timer.C:
		return false
	}
}

func (h *pipeProgress) SetProgress(percent float64) error {
	return h.write(strconv.FormatFloat(percent, 'f', -1, 64) + "\n")
}

func (h *pipeProgress) SetText(text string) error {
	// a newline would end the label command early
	text = strings.ReplaceAll(text, "\n", " ")
	return h.write("# " + text + "\n")
}

// CheckCancelled reports true once the tool has exited unsuccessfully,
// which is how zenity and yad signal the Cancel button.
func (h *pipeProgress) CheckCancelled() (bool, error) {
	select {
	case <-h.child.Done():
		return h.child.ExitCode() != 0, nil
	default:
		return false, nil
	}
}

func (h *pipeProgress) Close() error {
	if err := h.child.Kill(); err != nil {
		return dialog.IOError(h.name, err)
	}
	return nil
}

// qdbusProgress drives a kdialog progress bar through its D-Bus object.
type qdbusProgress struct {
	env   Env
	qdbus string
	ref   []string // service, object path
}

func (h *qdbusProgress) call(method string, args ...string) (Exec, error) {
	argv := append(append([]string{}, h.ref...), method)
	argv = append(argv, args...)

	res, err := h.env.Run(context.Background(), h.qdbus, argv...)
	if err != nil {
		return res, dialog.IOError("qdbus", err)
	}
	if res.ExitCode < 0 {
		return res, dialog.Killed(h.qdbus)
	}
	if res.ExitCode != 0 {
		return res, dialog.Implementation("qdbus", fmt.Sprintf("%s failed with exit status %d: %s",
			method, res.ExitCode, strings.TrimSpace(string(res.Stderr))))
	}
	return res, nil
}

func (h *qdbusProgress) SetProgress(percent float64) error {
	_, err := h.call("Set", "", "value", strconv.Itoa(int(percent)))
	return err
}

func (h *qdbusProgress) SetText(text string) error {
	_, err := h.call("setLabelText", text)
	return err
}

func (h *qdbusProgress) CheckCancelled() (bool, error) {
	res, err := h.call("wasCancelled")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(res.Stdout)) == "true", nil
}

func (h *qdbusProgress) Close() error {
	_, err := h.call("close")
	return err
}
