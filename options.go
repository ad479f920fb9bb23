package coro

import (
	"io"
	"log/slog"
)

// GoFunc spawns the runner goroutine of a coroutine.
type GoFunc func(func())

type options struct {
	logger *slog.Logger
	spawn  GoFunc
}

// Option configures a coroutine created by New or Bind.
type Option func(*options)

// WithLogger sets the logger that receives lifecycle records at debug
// level. Body errors and yielded values are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithGoFunc sets a custom GoFunc to spawn the runner goroutine. The
// GoFunc is expected to run f on a new goroutine; if it calls f inline,
// New starts the runner with a plain go statement instead.
func WithGoFunc(g GoFunc) Option {
	return func(o *options) {
		if g != nil {
			o.spawn = g
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func buildOptions(opts []Option) options {
	o := options{
		logger: discardLogger,
		spawn:  func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
