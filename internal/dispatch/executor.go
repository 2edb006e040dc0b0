// Package dispatch runs dialog requests against a backend, synchronously
// or on a worker goroutine, and owns the save-dialog retry loop.
package dispatch

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/runger/nativedialog/internal/backend"
	"github.com/runger/nativedialog/internal/dialog"
	dlog "github.com/runger/nativedialog/internal/log"
)

// Resolver returns the backend for one dispatch. It is called once per
// dispatch and its result is reused for every step of that dispatch,
// including save-loop retries and their warnings.
type Resolver func() (backend.Backend, error)

// Outcome is the result delivered by Spawn.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Spawn runs fn on its own goroutine and delivers the result on a buffered
// channel that receives exactly one value. There is no cancellation: fn
// runs until the user dismisses the dialog.
func Spawn[T any](fn func() (T, error)) <-chan Outcome[T] {
	ch := make(chan Outcome[T], 1)
	go func() {
		v, err := fn()
		ch <- Outcome[T]{Value: v, Err: err}
	}()
	return ch
}

// Resolved returns an already-completed channel. Used when a request
// fails before anything needs to run.
func Resolved[T any](v T, err error) <-chan Outcome[T] {
	ch := make(chan Outcome[T], 1)
	ch <- Outcome[T]{Value: v, Err: err}
	return ch
}

// Options configures an Executor.
type Options struct {
	Logger *slog.Logger
	// DPIAware is forwarded to the one-time platform initialization.
	DPIAware bool
}

// Executor dispatches finalized requests.
type Executor struct {
	resolve Resolver
	logger  *slog.Logger
	opts    Options
}

// New creates an executor.
func New(resolve Resolver, opts Options) *Executor {
	if opts.Logger == nil {
		opts.Logger = dlog.Discard()
	}
	return &Executor{resolve: resolve, logger: opts.Logger, opts: opts}
}

// Run shows req and blocks until the user dismisses it.
func (e *Executor) Run(req dialog.Request) (backend.Result, error) {
	id, b, err := e.begin(req)
	if err != nil {
		return backend.Result{}, err
	}

	var res backend.Result
	if req.Kind == dialog.SaveFile {
		res, err = e.save(b, id, req)
	} else {
		res, err = b.Show(backend.Invocation{ID: id, Request: req, Target: req.Target()})
	}
	if err != nil {
		dlog.LogBackendFailed(e.logger, id, b.Name(), err)
	}
	return res, err
}

// Progress opens a progress dialog and returns its handle.
func (e *Executor) Progress(req dialog.Request) (*ProgressHandle, error) {
	id, b, err := e.begin(req)
	if err != nil {
		return nil, err
	}

	h, err := b.Progress(backend.Invocation{ID: id, Request: req})
	if err != nil {
		dlog.LogBackendFailed(e.logger, id, b.Name(), err)
		return nil, err
	}
	return newProgressHandle(h, id, e.logger), nil
}

func (e *Executor) begin(req dialog.Request) (string, backend.Backend, error) {
	if err := EnsureInitialized(e.opts.DPIAware); err != nil {
		dlog.LogInitFailed(e.logger, err)
	}

	id := uuid.NewString()
	b, err := e.resolve()
	if err != nil {
		dlog.LogBackendFailed(e.logger, id, "", err)
		return id, nil, err
	}
	dlog.LogDispatch(e.logger, id, b.Name(), req.Kind.String())
	return id, b, nil
}
