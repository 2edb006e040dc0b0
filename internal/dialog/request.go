// Package dialog describes what a dialog should show, independent of the
// backend that ends up showing it.
package dialog

import (
	"path/filepath"
	"strings"

	"github.com/runger/nativedialog/internal/filter"
)

// Kind is the dialog variant a request resolves to.
type Kind int

const (
	OpenSingleFile Kind = iota
	OpenMultipleFile
	OpenDirectory
	SaveFile
	Alert
	Confirm
	Progress
)

func (k Kind) String() string {
	switch k {
	case OpenSingleFile:
		return "open_single_file"
	case OpenMultipleFile:
		return "open_multiple_file"
	case OpenDirectory:
		return "open_directory"
	case SaveFile:
		return "save_file"
	case Alert:
		return "alert"
	case Confirm:
		return "confirm"
	case Progress:
		return "progress"
	default:
		return "unknown"
	}
}

// DefaultTitle is used when the caller never set a title.
func (k Kind) DefaultTitle() string {
	switch k {
	case OpenSingleFile, OpenMultipleFile:
		return "Open File"
	case OpenDirectory:
		return "Open Folder"
	case SaveFile:
		return "Save As"
	case Alert:
		return "Message"
	case Confirm:
		return "Confirm"
	case Progress:
		return "Progress"
	default:
		return ""
	}
}

// IsFile reports whether k is one of the file chooser kinds.
func (k Kind) IsFile() bool {
	return k <= SaveFile
}

// Level is the severity of a message dialog.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel accepts "info", "warning"/"warn" and "error".
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "info", "":
		return LevelInfo, true
	case "warning", "warn":
		return LevelWarning, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Request is a finalized dialog description. Location is kept verbatim
// and resolved when the backend runs.
type Request struct {
	Kind     Kind
	Title    string
	Location string
	Filename string
	Filters  filter.Set
	Owner    WindowRef
	Modal    bool

	// Message and progress kinds.
	Level Level
	Text  string
}

// Finalize stamps the kind onto r and injects the default title if unset.
// Directory and message kinds drop any filters.
func (r Request) Finalize(kind Kind) Request {
	r.Kind = kind
	if r.Title == "" {
		r.Title = kind.DefaultTitle()
	}
	if kind != OpenSingleFile && kind != OpenMultipleFile && kind != SaveFile {
		r.Filters = nil
	}
	return r
}

// Target computes the path the backend should be pre-filled with.
//
//	location + filename  -> location/filename
//	location (save)      -> location/Untitled
//	location (open)      -> location/ (so choosers open inside it)
//	filename only        -> filename
//
// It returns "" when there is nothing to pre-fill.
func (r Request) Target() string {
	var (
		loc string
		ok  bool
	)
	if r.Location != "" {
		loc, ok = ResolveTilde(r.Location)
	}

	switch {
	case ok && r.Filename != "":
		return filepath.Join(loc, r.Filename)
	case ok && r.Kind == SaveFile:
		return filepath.Join(loc, "Untitled")
	case ok:
		if strings.HasSuffix(loc, string(filepath.Separator)) {
			return loc
		}
		return loc + string(filepath.Separator)
	case r.Filename != "":
		return r.Filename
	default:
		return ""
	}
}
