//go:build !windows

package cmd

import (
	"os"

	"golang.org/x/sys/unix"
)

// stdoutColumns returns the terminal width, trying stderr when stdout is
// piped. It returns 0 when neither is a terminal.
func stdoutColumns() int {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil && ws.Col > 0 {
			return int(ws.Col)
		}
	}
	return 0
}
