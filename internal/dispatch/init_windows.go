//go:build windows

package dispatch

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSetProcessDPIAware = user32.NewProc("SetProcessDPIAware")
)

// platformInit opts the process into system DPI awareness so the common
// dialogs are not bitmap-scaled.
func platformInit(dpiAware bool) error {
	if !dpiAware {
		return nil
	}
	if err := procSetProcessDPIAware.Find(); err != nil {
		return fmt.Errorf("failed to find SetProcessDPIAware: %w", err)
	}
	if ret, _, err := procSetProcessDPIAware.Call(); ret == 0 {
		return fmt.Errorf("failed to set DPI awareness: %w", err)
	}
	return nil
}
