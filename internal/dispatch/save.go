package dispatch

import (
	"fmt"
	"path/filepath"

	"github.com/runger/nativedialog/internal/backend"
	"github.com/runger/nativedialog/internal/dialog"
	dlog "github.com/runger/nativedialog/internal/log"
)

// WarningTitle titles the dialog shown for a rejected save path.
const WarningTitle = "Warning"

// save shows a save dialog until the chosen path passes the filter set or
// the user cancels. A rejected path triggers a warning and becomes the
// pre-fill for the next attempt. There is no attempt limit; with an empty
// filter set every path is accepted and the dialog runs once.
func (e *Executor) save(b backend.Backend, id string, req dialog.Request) (backend.Result, error) {
	target := req.Target()

	for attempt := 1; ; attempt++ {
		res, err := b.Show(backend.Invocation{ID: id, Request: req, Target: target})
		if err != nil {
			return backend.Result{}, err
		}
		if res.Cancelled || len(res.Paths) == 0 {
			return backend.Result{Cancelled: true}, nil
		}

		chosen := res.Paths[0]
		if req.Filters.Accepts(chosen) {
			return backend.Result{Paths: []string{chosen}}, nil
		}

		dlog.LogExtensionRejected(e.logger, id, chosen, attempt)
		if _, err := b.Show(backend.Invocation{ID: id, Request: WarningRequest(chosen, req.Owner)}); err != nil {
			return backend.Result{}, err
		}
		target = chosen
	}
}

// WarningRequest builds the alert shown when path has an unaccepted extension.
func WarningRequest(path string, owner dialog.WindowRef) dialog.Request {
	return dialog.Request{
		Kind:  dialog.Alert,
		Title: WarningTitle,
		Level: dialog.LevelWarning,
		Text:  WarningText(path),
		Owner: owner,
	}
}

// WarningText names the rejected extension, or says there was none.
func WarningText(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	if ext == "" || ext == "." {
		return "Unrecognized file type. Please try again."
	}
	return fmt.Sprintf("Unrecognized file type: %s. Please try again.", ext)
}
