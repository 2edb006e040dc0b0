package dialog

import (
	"os"
	"path/filepath"
	"strings"
)

// userHomeDir is swapped in tests.
var userHomeDir = os.UserHomeDir

// ResolveTilde expands a leading "~" path component to the current user's
// home directory. "~user" forms are left alone. It reports false when the
// path needs a home directory that cannot be determined.
func ResolveTilde(path string) (string, bool) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, true
	}

	home, err := userHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	if path == "~" {
		return home, true
	}
	return filepath.Join(home, path[2:]), true
}
