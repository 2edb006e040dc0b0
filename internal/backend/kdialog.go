package backend

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/runger/nativedialog/internal/dialog"
)

type kdialog struct {
	proc
}

func (k *kdialog) Show(inv Invocation) (Result, error) {
	var args []string
	if inv.Request.Kind.IsFile() {
		args = k.fileArgs(inv)
	} else {
		args = k.messageArgs(inv)
	}
	return k.show(inv.Request.Kind, args)
}

func (k *kdialog) fileArgs(inv Invocation) []string {
	req := inv.Request
	var args []string
	if id, ok := req.Owner.X11(); ok {
		args = append(args, "--attach", strconv.FormatUint(id, 10))
	}

	switch req.Kind {
	case dialog.OpenDirectory:
		args = append(args, "--getexistingdirectory")
	case dialog.SaveFile:
		args = append(args, "--getsavefilename")
	default:
		args = append(args, "--getopenfilename")
	}

	args = append(args, "--title", req.Title, inv.Target)

	if req.Kind == dialog.OpenMultipleFile {
		args = append(args, "--multiple", "--separate-output")
	}

	if len(req.Filters) > 0 {
		lines := make([]string, len(req.Filters))
		for i, f := range req.Filters {
			lines[i] = f.Format("{desc} ({types})", "*{ext}")
		}
		args = append(args, strings.Join(lines, "\n"))
	}
	return args
}

func (k *kdialog) messageArgs(inv Invocation) []string {
	req := inv.Request
	var args []string
	if id, ok := req.Owner.X11(); ok {
		args = append(args, fmt.Sprintf("--attach=0x%x", id))
	}

	if req.Kind == dialog.Confirm {
		args = append(args, "--yesno")
	} else {
		args = append(args, "--msgbox")
	}

	return append(args,
		escapeQt(req.Text),
		"--title", req.Title,
		"--icon="+levelIcon(req.Level),
	)
}

func (k *kdialog) progressArgs(inv Invocation) []string {
	req := inv.Request
	return []string{"--progressbar", req.Text, "100", "--title", req.Title}
}

// qdbusNames are tried in order; distributions ship the Qt 5 and Qt 6
// binaries under different names.
var qdbusNames = []string{"qdbus", "qdbus6", "qdbus-qt5"}

// Progress starts a kdialog progress bar. kdialog forks and prints a
// D-Bus reference ("<service> <path>") that is then driven through qdbus.
func (k *kdialog) Progress(inv Invocation) (ProgressHandle, error) {
	qdbus := ""
	for _, name := range qdbusNames {
		if path, err := k.env.LookPath(name); err == nil && path != "" {
			qdbus = path
			break
		}
	}
	if qdbus == "" {
		return nil, dialog.NoImplementation("kdialog progress requires qdbus")
	}

	res, err := k.run(k.progressArgs(inv))
	if err != nil {
		return nil, err
	}
	if _, err := k.outcome(res); err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, dialog.Implementation(k.Name(), "progress dialog was not created")
	}

	ref, err := parseDBusRef(res.Stdout)
	if err != nil {
		return nil, err
	}
	return &qdbusProgress{env: k.env, qdbus: qdbus, ref: ref}, nil
}

func parseDBusRef(out []byte) ([]string, error) {
	if !utf8.Valid(out) {
		return nil, dialog.InvalidString("kdialog", "progress reference is not valid UTF-8")
	}
	fields := strings.Fields(string(out))
	if len(fields) != 2 {
		return nil, dialog.InvalidString("kdialog", fmt.Sprintf("unexpected progress reference %q", strings.TrimSpace(string(out))))
	}
	return fields, nil
}
