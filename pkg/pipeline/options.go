package pipeline

import (
	"log/slog"

	"github.com/jmylchreest/cardex/pkg/cleaner"
	"github.com/jmylchreest/cardex/pkg/layout"
)

// Config holds pipeline configuration.
type Config struct {
	Layout layout.Layout

	// Repairs maps a backend name to the repair applied to each of its
	// pages after normalization. A nil entry disables the default.
	Repairs map[string]cleaner.Cleaner

	Logger *slog.Logger
}

// DefaultRepairBackend is the backend known to lose line breaks.
const DefaultRepairBackend = "pdfcpu"

// Option configures a Pipeline.
type Option func(*Config)

// WithLayout sets the catalog layout. The default repair is rebuilt for
// the new layout unless it was replaced.
func WithLayout(l layout.Layout) Option {
	return func(c *Config) {
		c.Layout = l
	}
}

// WithRepair registers repair for pages produced by the named backend.
func WithRepair(backend string, repair cleaner.Cleaner) Option {
	return func(c *Config) {
		c.Repairs[backend] = repair
	}
}

// WithoutRepair removes any repair registered for the named backend,
// including the default one.
func WithoutRepair(backend string) Option {
	return func(c *Config) {
		c.Repairs[backend] = nil
	}
}

// WithLogger sets the logger for dropped segments and read failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
