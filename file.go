package nativedialog

import (
	"sync/atomic"

	"github.com/runger/nativedialog/internal/dialog"
	"github.com/runger/nativedialog/internal/dispatch"
	"github.com/runger/nativedialog/internal/filter"
)

// FileDialog builds open, save and folder dialogs. Setters return an
// updated copy; a FileDialog value can be reused to build many requests.
type FileDialog struct {
	d   *Dispatcher
	req dialog.Request
}

// SetTitle overrides the per-kind default title.
func (f FileDialog) SetTitle(title string) FileDialog {
	f.req.Title = title
	return f
}

// SetFilename pre-fills the name field.
func (f FileDialog) SetFilename(name string) FileDialog {
	f.req.Filename = name
	return f
}

// SetLocation sets the starting directory. A leading ~ is resolved when
// the dialog is shown.
func (f FileDialog) SetLocation(dir string) FileDialog {
	f.req.Location = dir
	return f
}

// AddFilter appends a filter. Extensions may be given with or without the
// leading dot. A filter with no usable extensions is ignored.
func (f FileDialog) AddFilter(description string, extensions ...string) FileDialog {
	if flt, ok := filter.New(description, extensions...); ok {
		f.req.Filters = f.req.Filters.With(flt)
	}
	return f
}

// SetOwner attaches the dialog to a parent window where the backend supports it.
func (f FileDialog) SetOwner(owner WindowRef) FileDialog {
	f.req.Owner = owner
	return f
}

// SetModal blocks the owner window while the dialog is open.
func (f FileDialog) SetModal(modal bool) FileDialog {
	f.req.Modal = modal
	return f
}

func (f FileDialog) ResetTitle() FileDialog {
	f.req.Title = ""
	return f
}

func (f FileDialog) ResetFilename() FileDialog {
	f.req.Filename = ""
	return f
}

func (f FileDialog) ResetLocation() FileDialog {
	f.req.Location = ""
	return f
}

func (f FileDialog) ResetFilters() FileDialog {
	f.req.Filters = nil
	return f
}

func (f FileDialog) ResetOwner() FileDialog {
	f.req.Owner = WindowRef{}
	return f
}

// OpenSingleFile finalizes a chooser for one existing file.
func (f FileDialog) OpenSingleFile() *SingleFileRequest {
	return &SingleFileRequest{d: f.d, req: f.req.Finalize(dialog.OpenSingleFile)}
}

// OpenMultipleFile finalizes a chooser for any number of existing files.
func (f FileDialog) OpenMultipleFile() *MultipleFileRequest {
	return &MultipleFileRequest{d: f.d, req: f.req.Finalize(dialog.OpenMultipleFile)}
}

// OpenSingleDir finalizes a folder chooser. Filters are dropped.
func (f FileDialog) OpenSingleDir() *SingleFileRequest {
	return &SingleFileRequest{d: f.d, req: f.req.Finalize(dialog.OpenDirectory)}
}

// SaveSingleFile finalizes a save dialog. When filters are set, a chosen
// name whose extension none of them accepts is rejected with a warning
// and the dialog is shown again.
func (f FileDialog) SaveSingleFile() *SingleFileRequest {
	return &SingleFileRequest{d: f.d, req: f.req.Finalize(dialog.SaveFile)}
}

// SingleFileRequest is a finalized dialog returning at most one path.
// It can be shown once.
type SingleFileRequest struct {
	d        *Dispatcher
	req      dialog.Request
	consumed atomic.Bool
}

// Request returns the finalized request.
func (r *SingleFileRequest) Request() Request { return r.req }

// Show blocks until the user picks a path or cancels. Cancel returns "".
func (r *SingleFileRequest) Show() (string, error) {
	if r.consumed.Swap(true) {
		return "", ErrAlreadyShown
	}
	return r.run()
}

// Spawn shows the dialog on its own goroutine.
func (r *SingleFileRequest) Spawn() <-chan Outcome[string] {
	if r.consumed.Swap(true) {
		return dispatch.Resolved("", ErrAlreadyShown)
	}
	return dispatch.Spawn(r.run)
}

func (r *SingleFileRequest) run() (string, error) {
	res, err := r.d.exec.Run(r.req)
	if err != nil || res.Cancelled || len(res.Paths) == 0 {
		return "", err
	}
	return res.Paths[0], nil
}

// MultipleFileRequest is a finalized chooser returning any number of paths.
// It can be shown once.
type MultipleFileRequest struct {
	d        *Dispatcher
	req      dialog.Request
	consumed atomic.Bool
}

// Request returns the finalized request.
func (r *MultipleFileRequest) Request() Request { return r.req }

// Show blocks until the user picks or cancels. Cancel returns an empty slice.
func (r *MultipleFileRequest) Show() ([]string, error) {
	if r.consumed.Swap(true) {
		return nil, ErrAlreadyShown
	}
	return r.run()
}

// Spawn shows the dialog on its own goroutine.
func (r *MultipleFileRequest) Spawn() <-chan Outcome[[]string] {
	if r.consumed.Swap(true) {
		return dispatch.Resolved[[]string](nil, ErrAlreadyShown)
	}
	return dispatch.Spawn(r.run)
}

func (r *MultipleFileRequest) run() ([]string, error) {
	res, err := r.d.exec.Run(r.req)
	if err != nil || res.Cancelled {
		return nil, err
	}
	return res.Paths, nil
}
