package nativedialog

import (
	"sync/atomic"

	"github.com/runger/nativedialog/internal/dialog"
	"github.com/runger/nativedialog/internal/dispatch"
)

// MessageDialog builds alerts and yes/no confirmations.
type MessageDialog struct {
	d   *Dispatcher
	req dialog.Request
}

func (m MessageDialog) SetTitle(title string) MessageDialog {
	m.req.Title = title
	return m
}

func (m MessageDialog) SetText(text string) MessageDialog {
	m.req.Text = text
	return m
}

// SetLevel picks the icon. The default is LevelInfo.
func (m MessageDialog) SetLevel(level Level) MessageDialog {
	m.req.Level = level
	return m
}

func (m MessageDialog) SetOwner(owner WindowRef) MessageDialog {
	m.req.Owner = owner
	return m
}

func (m MessageDialog) SetModal(modal bool) MessageDialog {
	m.req.Modal = modal
	return m
}

func (m MessageDialog) ResetTitle() MessageDialog {
	m.req.Title = ""
	return m
}

func (m MessageDialog) ResetOwner() MessageDialog {
	m.req.Owner = WindowRef{}
	return m
}

// Alert finalizes a message box with a single OK button.
func (m MessageDialog) Alert() *AlertRequest {
	return &AlertRequest{d: m.d, req: m.req.Finalize(dialog.Alert)}
}

// Confirm finalizes a yes/no question.
func (m MessageDialog) Confirm() *ConfirmRequest {
	return &ConfirmRequest{d: m.d, req: m.req.Finalize(dialog.Confirm)}
}

// AlertRequest is a finalized alert. It can be shown once.
type AlertRequest struct {
	d        *Dispatcher
	req      dialog.Request
	consumed atomic.Bool
}

func (r *AlertRequest) Request() Request { return r.req }

// Show blocks until the alert is dismissed.
func (r *AlertRequest) Show() error {
	if r.consumed.Swap(true) {
		return ErrAlreadyShown
	}
	_, err := r.run()
	return err
}

func (r *AlertRequest) Spawn() <-chan Outcome[struct{}] {
	if r.consumed.Swap(true) {
		return dispatch.Resolved(struct{}{}, ErrAlreadyShown)
	}
	return dispatch.Spawn(r.run)
}

func (r *AlertRequest) run() (struct{}, error) {
	_, err := r.d.exec.Run(r.req)
	return struct{}{}, err
}

// ConfirmRequest is a finalized yes/no question. It can be shown once.
type ConfirmRequest struct {
	d        *Dispatcher
	req      dialog.Request
	consumed atomic.Bool
}

func (r *ConfirmRequest) Request() Request { return r.req }

// Show blocks until the user answers. Closing the dialog counts as no.
func (r *ConfirmRequest) Show() (bool, error) {
	if r.consumed.Swap(true) {
		return false, ErrAlreadyShown
	}
	return r.run()
}

func (r *ConfirmRequest) Spawn() <-chan Outcome[bool] {
	if r.consumed.Swap(true) {
		return dispatch.Resolved(false, ErrAlreadyShown)
	}
	return dispatch.Spawn(r.run)
}

func (r *ConfirmRequest) run() (bool, error) {
	res, err := r.d.exec.Run(r.req)
	if err != nil {
		return false, err
	}
	return res.Confirmed, nil
}
