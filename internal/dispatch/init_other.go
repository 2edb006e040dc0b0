//go:build !windows

package dispatch

// The subprocess backends need no process-wide setup.
func platformInit(bool) error {
	return nil
}
