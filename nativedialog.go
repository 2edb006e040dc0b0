// Package nativedialog shows native file choosers, message boxes and
// progress dialogs. Each dispatch picks a platform facility at run time:
// zenity, kdialog or yad on Linux and the BSDs, osascript on macOS, and
// the common dialogs on Windows.
//
//	path, err := nativedialog.File().
//		SetLocation("~/Pictures").
//		AddFilter("PNG image", "png").
//		SaveSingleFile().
//		Show()
//
// Cancellation is never an error: Show returns "", nil, false or an empty
// slice when the user dismisses the dialog.
package nativedialog

import (
	"log/slog"
	"sync"

	"github.com/runger/nativedialog/internal/backend"
	"github.com/runger/nativedialog/internal/config"
	"github.com/runger/nativedialog/internal/dialog"
	"github.com/runger/nativedialog/internal/dispatch"
	dlog "github.com/runger/nativedialog/internal/log"
)

type (
	// Outcome is delivered exactly once on the channel returned by Spawn.
	Outcome[T any] = dispatch.Outcome[T]

	// WindowRef is an owner window captured once and validated.
	WindowRef = dialog.WindowRef
	// Level is the severity of a message dialog.
	Level = dialog.Level
	// Error is the error type of every failed dialog operation.
	Error = dialog.Error

	// Backend presents dialogs through one platform facility.
	Backend = backend.Backend
	// Invocation is one call into a Backend.
	Invocation = backend.Invocation
	// Result is what the user did in a Backend dialog.
	Result = backend.Result
	// BackendProgress is the control channel a Backend returns for a progress dialog.
	BackendProgress = backend.ProgressHandle
	// Request describes one dialog as seen by a Backend.
	Request = dialog.Request
	// Kind is the dialog kind carried by a Request.
	Kind = dialog.Kind
	// Env is the process environment the backend selector reads.
	Env = backend.Env
)

const (
	LevelInfo    = dialog.LevelInfo
	LevelWarning = dialog.LevelWarning
	LevelError   = dialog.LevelError
)

const (
	KindOpenSingleFile   = dialog.OpenSingleFile
	KindOpenMultipleFile = dialog.OpenMultipleFile
	KindOpenDirectory    = dialog.OpenDirectory
	KindSaveFile         = dialog.SaveFile
	KindAlert            = dialog.Alert
	KindConfirm          = dialog.Confirm
	KindProgress         = dialog.Progress
)

var (
	ErrIO                   = dialog.ErrIO
	ErrInvalidString        = dialog.ErrInvalidString
	ErrNoImplementation     = dialog.ErrNoImplementation
	ErrKilled               = dialog.ErrKilled
	ErrInvalidPercentage    = dialog.ErrInvalidPercentage
	ErrImplementation       = dialog.ErrImplementation
	ErrAlreadyShown         = dialog.ErrAlreadyShown
	ErrInvalidWindow        = dialog.ErrInvalidWindow
	ErrPreferredUnavailable = backend.ErrPreferredUnavailable
	ErrProgressClosed       = dispatch.ErrProgressClosed
)

// X11Window wraps an X11 window id.
func X11Window(id uint64) (WindowRef, error) { return dialog.X11Window(id) }

// Win32Window wraps an HWND.
func Win32Window(hwnd uintptr) (WindowRef, error) { return dialog.Win32Window(hwnd) }

// AppKitWindow wraps an NSWindow pointer.
func AppKitWindow(ptr uintptr) (WindowRef, error) { return dialog.AppKitWindow(ptr) }

// SystemEnv is the real process environment.
func SystemEnv() Env { return backend.SystemEnv() }

// Dispatcher shows dialogs built from its File, Message and Progress builders.
// It is safe for concurrent use.
type Dispatcher struct {
	exec *dispatch.Executor
}

type settings struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend Backend
	env     *Env
}

// Option configures a Dispatcher.
type Option func(*settings)

// WithConfig uses cfg instead of the built-in defaults.
func WithConfig(cfg *config.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithLogger sends dispatch events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithBackend skips selection and always uses b.
func WithBackend(b Backend) Option {
	return func(s *settings) { s.backend = b }
}

// WithEnv makes the selector read env instead of the process environment.
func WithEnv(env Env) Option {
	return func(s *settings) { s.env = &env }
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	cfg := s.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := s.logger
	if logger == nil {
		logger = loggerFor(cfg)
	}

	var resolve dispatch.Resolver
	if s.backend != nil {
		resolve = dispatch.FixedResolver(s.backend)
	} else {
		env := backend.SystemEnv()
		if s.env != nil {
			env = *s.env
		}
		extra, err := cfg.ToolArgs()
		if err != nil {
			logger.Warn("ignoring extra backend arguments", "error", err)
			extra = nil
		}
		resolve = dispatch.SelectorResolver(dispatch.SelectorConfig{
			Env:            env,
			Preferred:      cfg.Backend.Preferred,
			VersionTimeout: cfg.VersionTimeout(),
			ExtraArgs:      extra,
			MessageWidth:   cfg.Messages.Width,
			Logger:         logger,
		})
	}

	return &Dispatcher{
		exec: dispatch.New(resolve, dispatch.Options{Logger: logger, DPIAware: cfg.Windows.DPIAware}),
	}
}

// loggerFor builds the logger described by cfg.Logging. Without a log file
// the library stays silent unless NATIVE_DIALOG_DEBUG=1.
func loggerFor(cfg *config.Config) *slog.Logger {
	path := cfg.LogFilePath(config.DefaultPaths())
	if path == "" {
		return dlog.NewFromEnv()
	}
	logger, err := dlog.NewFile(path, dlog.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return dlog.NewFromEnv()
	}
	return logger
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide dispatcher, built on first use from the
// user's configuration file. An unreadable or invalid file falls back to
// the defaults.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
			cfg.ApplyEnvOverrides()
		}
		defaultDispatcher = New(WithConfig(cfg))
	})
	return defaultDispatcher
}

// File starts a file dialog on d.
func (d *Dispatcher) File() FileDialog { return FileDialog{d: d} }

// Message starts a message dialog on d.
func (d *Dispatcher) Message() MessageDialog { return MessageDialog{d: d} }

// Progress starts a progress dialog on d.
func (d *Dispatcher) Progress() ProgressDialog { return ProgressDialog{d: d} }

// File starts a file dialog on the default dispatcher.
func File() FileDialog { return Default().File() }

// Message starts a message dialog on the default dispatcher.
func Message() MessageDialog { return Default().Message() }

// Progress starts a progress dialog on the default dispatcher.
func Progress() ProgressDialog { return Default().Progress() }
