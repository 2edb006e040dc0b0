package cmd

import (
	"os"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// ANSI color codes for plain terminal output.
var (
	colorRed    string
	colorGreen  string
	colorYellow string
	colorCyan   string
	colorDim    string
	colorBold   string
	colorReset  string
)

// Styles for the doctor table.
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pickStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

func init() {
	applyColorMode()
}

func enableColors() {
	colorRed = "\033[0;31m"
	colorGreen = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan = "\033[0;36m"
	colorDim = "\033[2m"
	colorBold = "\033[1m"
	colorReset = "\033[0m"
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func disableColors() {
	colorRed = ""
	colorGreen = ""
	colorYellow = ""
	colorCyan = ""
	colorDim = ""
	colorBold = ""
	colorReset = ""
	lipgloss.SetColorProfile(termenv.Ascii)
}

// applyColorMode honours --color. In auto mode colors follow the terminal's
// capabilities and NO_COLOR.
func applyColorMode() {
	switch colorMode {
	case "always":
		enableColors()
	case "never":
		disableColors()
	default:
		if shouldDisableColors() {
			disableColors()
		} else {
			enableColors()
		}
	}
}

func shouldDisableColors() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return true
	}

	if os.Getenv("TERM") == "dumb" {
		return true
	}

	if runtime.GOOS == "windows" {
		if os.Getenv("WT_SESSION") != "" || os.Getenv("TERM_PROGRAM") != "" {
			return false
		}
		return os.Getenv("ANSICON") == "" && os.Getenv("ConEmuANSI") != "ON"
	}

	return termenv.NewOutput(os.Stdout).ColorProfile() == termenv.Ascii
}

// termWidth returns the terminal width, falling back to $COLUMNS and then 80.
func termWidth() int {
	if w := stdoutColumns(); w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return 80
}

// padCell pads or truncates s to exactly width display columns.
func padCell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
