//go:build windows

package cmd

import (
	"os"

	"golang.org/x/sys/windows"
)

// stdoutColumns returns the width of the visible console window, or 0 when
// stdout is not a console.
func stdoutColumns() int {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(os.Stdout.Fd()), &info); err != nil {
		return 0
	}
	return int(info.Window.Right-info.Window.Left) + 1
}
