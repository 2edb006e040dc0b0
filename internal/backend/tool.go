package backend

import (
	"bytes"
	"fmt"
	"strings"
)

// Tool identifies a concrete dialog facility.
type Tool int

const (
	Zenity Tool = iota + 1
	KDialog
	Yad
	Osascript
	Native
)

// Tools lists every tool in display order.
var Tools = []Tool{Zenity, KDialog, Yad, Osascript, Native}

func (t Tool) String() string {
	switch t {
	case Zenity:
		return "zenity"
	case KDialog:
		return "kdialog"
	case Yad:
		return "yad"
	case Osascript:
		return "osascript"
	case Native:
		return "native"
	default:
		return "unknown"
	}
}

// ParseTool maps a configured backend name to a Tool.
func ParseTool(name string) (Tool, error) {
	for _, t := range Tools {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown backend: %s", name)
}

// Executable is the program looked up on PATH. Native has none.
func (t Tool) Executable() string {
	if t == Native {
		return ""
	}
	return t.String()
}

// isCancel applies the tool's exit-code contract for user dismissal.
func (t Tool) isCancel(res Exec) bool {
	switch t {
	case Zenity:
		// 1 cancel/no, 5 timeout
		return res.ExitCode == 1 || res.ExitCode == 5
	case KDialog:
		return res.ExitCode == 1 || res.ExitCode == 2
	case Yad:
		// 1 cancel, 70 timeout, 252 window closed
		return res.ExitCode == 1 || res.ExitCode == 70 || res.ExitCode == 252
	case Osascript:
		// error -128 is "User canceled."
		return res.ExitCode == 1 && bytes.Contains(res.Stderr, []byte("-128"))
	default:
		return false
	}
}
