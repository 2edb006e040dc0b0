package dispatch

import (
	"log/slog"
	"time"

	"github.com/runger/nativedialog/internal/backend"
)

// SelectorConfig feeds SelectorResolver.
type SelectorConfig struct {
	Env            backend.Env
	Preferred      string
	VersionTimeout time.Duration
	ExtraArgs      map[backend.Tool][]string
	MessageWidth   int
	Logger         *slog.Logger
}

// SelectorResolver probes the environment on every call, so concurrent or
// successive dispatches may land on different backends when the session
// changes underneath a long-running process.
func SelectorResolver(cfg SelectorConfig) Resolver {
	return func() (backend.Backend, error) {
		c, err := backend.NewSelector(cfg.Env, backend.SelectorOptions{
			Preferred:      cfg.Preferred,
			VersionTimeout: cfg.VersionTimeout,
			Logger:         cfg.Logger,
		}).Select()
		if err != nil {
			return nil, err
		}
		return backend.New(c, backend.Options{
			Env:          cfg.Env,
			ExtraArgs:    cfg.ExtraArgs,
			MessageWidth: cfg.MessageWidth,
			Logger:       cfg.Logger,
		})
	}
}

// FixedResolver always returns b.
func FixedResolver(b backend.Backend) Resolver {
	return func() (backend.Backend, error) { return b, nil }
}
