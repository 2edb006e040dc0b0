package backend

import (
	"fmt"

	"github.com/runger/nativedialog/internal/dialog"
)

// yad accepts most of zenity's flags but has no window attachment, so
// owner references are ignored.
type yad struct {
	proc
	width int
}

func (y *yad) Show(inv Invocation) (Result, error) {
	var args []string
	if inv.Request.Kind.IsFile() {
		args = y.fileArgs(inv)
	} else {
		args = y.messageArgs(inv)
	}
	return y.show(inv.Request.Kind, args)
}

func (y *yad) Progress(inv Invocation) (ProgressHandle, error) {
	return startPipeProgress(y.proc, y.progressArgs(inv))
}

func (y *yad) fileArgs(inv Invocation) []string {
	req := inv.Request
	args := []string{"--file", "--title", req.Title}

	switch req.Kind {
	case dialog.OpenDirectory:
		args = append(args, "--directory")
	case dialog.SaveFile:
		args = append(args, "--save", "--confirm-overwrite")
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

func (y *yad) messageArgs(inv Invocation) []string {
	req := inv.Request
	args := []string{
		fmt.Sprintf("--width=%d", y.width),
		"--title", req.Title,
		"--image", levelIcon(req.Level),
		"--text", escapePango(req.Text),
	}
	if req.Kind == dialog.Confirm {
		return append(args, "--button=No:1", "--button=Yes:0")
	}
	return append(args, "--button=OK:0")
}

func (y *yad) progressArgs(inv Invocation) []string {
	req := inv.Request
	return []string{"--progress", "--title", req.Title, "--text", escapePango(req.Text)}
}
