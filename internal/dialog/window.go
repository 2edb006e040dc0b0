package dialog

import "errors"

// Platform identifies the windowing system a WindowRef belongs to.
type Platform int

const (
	PlatformNone Platform = iota
	PlatformX11
	PlatformWin32
	PlatformAppKit
)

func (p Platform) String() string {
	switch p {
	case PlatformX11:
		return "x11"
	case PlatformWin32:
		return "win32"
	case PlatformAppKit:
		return "appkit"
	default:
		return "none"
	}
}

// ErrInvalidWindow is returned for a zero window handle.
var ErrInvalidWindow = errors.New("invalid window reference")

// WindowRef is an opaque owner-window reference. It only carries the
// numeric handle and is safe to copy across goroutines. The zero value
// means "no owner".
type WindowRef struct {
	platform Platform
	handle   uint64
}

// X11Window references an X11 window by id.
func X11Window(id uint64) (WindowRef, error) {
	if id == 0 {
		return WindowRef{}, ErrInvalidWindow
	}
	return WindowRef{platform: PlatformX11, handle: id}, nil
}

// Win32Window references a window by HWND.
func Win32Window(hwnd uintptr) (WindowRef, error) {
	if hwnd == 0 {
		return WindowRef{}, ErrInvalidWindow
	}
	return WindowRef{platform: PlatformWin32, handle: uint64(hwnd)}, nil
}

// AppKitWindow references an NSWindow by pointer value.
func AppKitWindow(ptr uintptr) (WindowRef, error) {
	if ptr == 0 {
		return WindowRef{}, ErrInvalidWindow
	}
	return WindowRef{platform: PlatformAppKit, handle: uint64(ptr)}, nil
}

func (w WindowRef) IsZero() bool { return w.platform == PlatformNone }

func (w WindowRef) Platform() Platform { return w.platform }

// X11 returns the X11 window id, if w is an X11 reference.
func (w WindowRef) X11() (uint64, bool) {
	if w.platform != PlatformX11 {
		return 0, false
	}
	return w.handle, true
}

// Win32 returns the HWND, if w is a Win32 reference.
func (w WindowRef) Win32() (uintptr, bool) {
	if w.platform != PlatformWin32 {
		return 0, false
	}
	return uintptr(w.handle), true
}
