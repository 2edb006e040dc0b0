//go:build !windows

package backend

import "github.com/runger/nativedialog/internal/dialog"

func newNative(Options) (Backend, error) {
	return nil, dialog.NoImplementation("the native backend is only available on windows")
}
