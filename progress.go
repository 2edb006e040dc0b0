package nativedialog

import "github.com/runger/nativedialog/internal/dialog"

// ProgressHandle controls a live progress dialog. The caller owns it and
// must Close it.
type ProgressHandle interface {
	// SetProgress moves the bar. percent must be within 0..100.
	SetProgress(percent float64) error
	SetText(text string) error
	// CheckCancelled reports, without blocking, whether the user dismissed the dialog.
	CheckCancelled() (bool, error)
	Close() error
}

// ProgressDialog builds a progress dialog.
type ProgressDialog struct {
	d   *Dispatcher
	req dialog.Request
}

func (p ProgressDialog) SetTitle(title string) ProgressDialog {
	p.req.Title = title
	return p
}

func (p ProgressDialog) SetText(text string) ProgressDialog {
	p.req.Text = text
	return p
}

func (p ProgressDialog) SetOwner(owner WindowRef) ProgressDialog {
	p.req.Owner = owner
	return p
}

func (p ProgressDialog) ResetTitle() ProgressDialog {
	p.req.Title = ""
	return p
}

func (p ProgressDialog) ResetOwner() ProgressDialog {
	p.req.Owner = WindowRef{}
	return p
}

// Show opens the dialog and returns its handle. Windows and macOS have no
// progress dialog and return ErrNoImplementation.
func (p ProgressDialog) Show() (ProgressHandle, error) {
	h, err := p.d.exec.Progress(p.req.Finalize(dialog.Progress))
	if err != nil {
		return nil, err
	}
	return h, nil
}
