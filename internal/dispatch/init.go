package dispatch

import "sync"

var (
	initOnce sync.Once
	initErr  error

	// platformInitFn is swapped in tests.
	platformInitFn = platformInit
)

// EnsureInitialized performs process-wide platform setup once, on the
// first dispatch. Later calls return the first call's error.
func EnsureInitialized(dpiAware bool) error {
	initOnce.Do(func() {
		initErr = platformInitFn(dpiAware)
	})
	return initErr
}
