package dispatch

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/runger/nativedialog/internal/backend"
	"github.com/runger/nativedialog/internal/dialog"
	dlog "github.com/runger/nativedialog/internal/log"
)

// ErrProgressClosed is returned by updates after Close.
var ErrProgressClosed = errors.New("progress dialog closed")

// ProgressHandle wraps a backend handle with range checking and an
// idempotent Close. It is the only handle issued for its dialog.
type ProgressHandle struct {
	mu      sync.Mutex
	inner   backend.ProgressHandle
	id      string
	logger  *slog.Logger
	closed  bool
	last    float64
	hasLast bool
}

func newProgressHandle(inner backend.ProgressHandle, id string, logger *slog.Logger) *ProgressHandle {
	return &ProgressHandle{inner: inner, id: id, logger: logger}
}

// SetProgress moves the bar to percent, which must be within 0..100.
// Repeating the current value is a no-op.
func (h *ProgressHandle) SetProgress(percent float64) error {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return dialog.InvalidPercentage(percent)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrProgressClosed
	}
	if h.hasLast && h.last == percent {
		return nil
	}
	if err := h.inner.SetProgress(percent); err != nil {
		return err
	}
	h.last, h.hasLast = percent, true
	return nil
}

// SetText replaces the label.
func (h *ProgressHandle) SetText(text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrProgressClosed
	}
	return h.inner.SetText(text)
}

// CheckCancelled reports whether the user dismissed the dialog. It never blocks.
func (h *ProgressHandle) CheckCancelled() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false, nil
	}
	return h.inner.CheckCancelled()
}

// Close dismisses the dialog. Further calls return nil.
func (h *ProgressHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	cancelled, _ := h.inner.CheckCancelled()
	h.closed = true
	dlog.LogProgressClosed(h.logger, h.id, cancelled)
	return h.inner.Close()
}
