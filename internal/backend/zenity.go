package backend

import (
	"fmt"
	"strconv"

	"github.com/runger/nativedialog/internal/dialog"
)

type zenity struct {
	proc
	width int
}

func (z *zenity) Show(inv Invocation) (Result, error) {
	var args []string
	if inv.Request.Kind.IsFile() {
		args = z.fileArgs(inv)
	} else {
		args = z.messageArgs(inv)
	}
	return z.show(inv.Request.Kind, args)
}

func (z *zenity) Progress(inv Invocation) (ProgressHandle, error) {
	return startPipeProgress(z.proc, z.progressArgs(inv))
}

func (z *zenity) attachArgs(req dialog.Request) []string {
	id, ok := req.Owner.X11()
	if !ok {
		return nil
	}
	args := []string{"--attach", strconv.FormatUint(id, 10)}
	if req.Modal {
		args = append(args, "--modal")
	}
	return args
}

func (z *zenity) fileArgs(inv Invocation) []string {
	req := inv.Request
	args := z.attachArgs(req)
	args = append(args, "--file-selection", "--title", req.Title)

	switch req.Kind {
	case dialog.OpenDirectory:
		args = append(args, "--directory")
	case dialog.SaveFile:
		args = append(args, "--save")
		// --confirm-overwrite was removed in zenity 3.91.0
		// https://gitlab.gnome.org/GNOME/zenity/-/issues/55
		if z.cap.Before(3, 91, 0) {
			args = append(args, "--confirm-overwrite")
		}
	case dialog.OpenMultipleFile:
		args = append(args, "--multiple", "--separator", "\n")
	}

	if inv.Target != "" {
		args = append(args, "--filename", inv.Target)
	}

	for _, f := range req.Filters {
		args = append(args, "--file-filter", f.Format("{desc} ({types}) | {types}", "*{ext}"))
	}
	return args
}

func (z *zenity) messageArgs(inv Invocation) []string {
	req := inv.Request
	args := []string{fmt.Sprintf("--width=%d", z.width)}
	args = append(args, z.attachArgs(req)...)

	if req.Kind == dialog.Confirm {
		args = append(args, "--question")
		// --icon-name was renamed to --icon in zenity 3.90.0
		if z.cap.Before(3, 90, 0) {
			args = append(args, "--icon-name", levelIcon(req.Level))
		} else {
			args = append(args, "--icon", levelIcon(req.Level))
		}
	} else {
		switch req.Level {
		case dialog.LevelWarning:
			args = append(args, "--warning")
		case dialog.LevelError:
			args = append(args, "--error")
		default:
			args = append(args, "--info")
		}
	}

	return append(args, "--title", req.Title, "--text", escapePango(req.Text))
}

func (z *zenity) progressArgs(inv Invocation) []string {
	req := inv.Request
	args := z.attachArgs(req)
	return append(args, "--progress", "--title", req.Title, "--text", escapePango(req.Text))
}
