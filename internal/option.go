package internal

import (
	"log/slog"
	"net"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	logger  *slog.Logger
	onReady func(addr net.Addr)
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger replaces the JSON stdout logger Run would otherwise install.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithReady registers a callback invoked once the HTTP listener is bound.
func WithReady(fn func(addr net.Addr)) Option {
	return func(a *application) {
		a.onReady = fn
	}
}
