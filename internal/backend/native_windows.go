//go:build windows

package backend

import (
	"errors"

	"github.com/sqweek/dialog"

	ndialog "github.com/runger/nativedialog/internal/dialog"
)

// native uses the Win32 common dialogs and message boxes. The Win32
// dialogs in use take no owner here, so WindowRef is ignored.
type native struct{}

func newNative(Options) (Backend, error) {
	return &native{}, nil
}

func (n *native) Name() string { return Native.String() }

func (n *native) Show(inv Invocation) (Result, error) {
	req := inv.Request
	dir, name := splitTarget(inv.Target)

	switch req.Kind {
	case ndialog.OpenSingleFile, ndialog.OpenMultipleFile, ndialog.SaveFile:
		b := dialog.File().Title(req.Title)
		for _, f := range req.Filters {
			if exts := f.BareExtensions(); len(exts) > 0 {
				b = b.Filter(f.Description, exts...)
			}
		}
		if dir != "" {
			b = b.SetStartDir(dir)
		}
		if name != "" {
			b = b.SetStartFile(name)
		}

		var (
			path string
			err  error
		)
		if req.Kind == ndialog.SaveFile {
			path, err = b.Save()
		} else {
			path, err = b.Load()
		}
		return nativeResult(path, err)

	case ndialog.OpenDirectory:
		b := dialog.Directory().Title(req.Title)
		if dir != "" {
			b = b.SetStartDir(dir)
		}
		path, err := b.Browse()
		return nativeResult(path, err)

	case ndialog.Alert:
		mb := dialog.Message("%s", req.Text).Title(req.Title)
		if req.Level == ndialog.LevelError {
			mb.Error()
		} else {
			mb.Info()
		}
		return Result{}, nil

	case ndialog.Confirm:
		ok := dialog.Message("%s", req.Text).Title(req.Title).YesNo()
		return Result{Confirmed: ok, Cancelled: !ok}, nil
	}

	return Result{}, ndialog.NoImplementation("unsupported dialog kind " + req.Kind.String())
}

func (n *native) Progress(Invocation) (ProgressHandle, error) {
	return nil, ndialog.NoImplementation("progress dialogs are not implemented on windows")
}

func nativeResult(path string, err error) (Result, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return Result{Cancelled: true}, nil
	}
	if err != nil {
		return Result{}, ndialog.Implementation(Native.String(), err.Error())
	}
	if path == "" {
		return Result{Cancelled: true}, nil
	}
	return Result{Paths: []string{path}}, nil
}
