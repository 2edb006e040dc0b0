package backend

import (
	"strings"

	"github.com/runger/nativedialog/internal/dialog"
)

// osascript shows the AppKit choosers and alerts through AppleScript.
// Owner windows are ignored: AppleScript dialogs cannot be made sheets.
type osascript struct {
	proc
}

func (o *osascript) Show(inv Invocation) (Result, error) {
	return o.show(inv.Request.Kind, []string{"-e", o.script(inv)})
}

func (o *osascript) Progress(Invocation) (ProgressHandle, error) {
	return nil, dialog.NoImplementation("progress dialogs are not available through osascript")
}

func (o *osascript) script(inv Invocation) string {
	req := inv.Request
	dir, name := splitTarget(inv.Target)

	var b strings.Builder
	switch req.Kind {
	case dialog.OpenSingleFile:
		b.WriteString("POSIX path of (choose file with prompt " + appleString(req.Title))
		writeTypes(&b, req)
		writeLocation(&b, dir)
		b.WriteString(")")
	case dialog.OpenMultipleFile:
		b.WriteString("set chosen to choose file with prompt " + appleString(req.Title))
		writeTypes(&b, req)
		writeLocation(&b, dir)
		b.WriteString(" with multiple selections allowed\n")
		b.WriteString("set out to \"\"\n")
		b.WriteString("repeat with f in chosen\n")
		b.WriteString("set out to out & POSIX path of f & linefeed\n")
		b.WriteString("end repeat\n")
		b.WriteString("return out")
	case dialog.OpenDirectory:
		b.WriteString("POSIX path of (choose folder with prompt " + appleString(req.Title))
		writeLocation(&b, dir)
		b.WriteString(")")
	case dialog.SaveFile:
		b.WriteString("POSIX path of (choose file name with prompt " + appleString(req.Title))
		if name != "" {
			b.WriteString(" default name " + appleString(name))
		}
		writeLocation(&b, dir)
		b.WriteString(")")
	case dialog.Alert:
		b.WriteString("display dialog " + appleString(req.Text) + " with title " + appleString(req.Title))
		b.WriteString(` buttons {"OK"} default button "OK"`)
		b.WriteString(" with icon " + appleIcon(req.Level))
	case dialog.Confirm:
		b.WriteString("display dialog " + appleString(req.Text) + " with title " + appleString(req.Title))
		b.WriteString(` buttons {"No", "Yes"} default button "Yes" cancel button "No"`)
		b.WriteString(" with icon " + appleIcon(req.Level))
	}
	return b.String()
}

// writeTypes restricts a chooser to the filter extensions. AppleScript
// wants them without the dot.
func writeTypes(b *strings.Builder, req dialog.Request) {
	if len(req.Filters) == 0 {
		return
	}
	var types []string
	for _, f := range req.Filters {
		for _, ext := range f.BareExtensions() {
			types = append(types, appleString(ext))
		}
	}
	if len(types) == 0 {
		return
	}
	b.WriteString(" of type {" + strings.Join(types, ", ") + "}")
}

func writeLocation(b *strings.Builder, dir string) {
	if dir == "" {
		return
	}
	b.WriteString(" default location POSIX file " + appleString(dir))
}

func appleIcon(level dialog.Level) string {
	switch level {
	case dialog.LevelWarning:
		return "caution"
	case dialog.LevelError:
		return "stop"
	default:
		return "note"
	}
}
