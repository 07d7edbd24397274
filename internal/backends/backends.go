// Package backends is the registry of document backends known to the CLI.
package backends

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/cardex/pkg/backend"
	"github.com/jmylchreest/cardex/pkg/backend/fitz"
	"github.com/jmylchreest/cardex/pkg/backend/pdf"
	"github.com/jmylchreest/cardex/pkg/backend/pdfcpu"
	"github.com/jmylchreest/cardex/pkg/backend/text"
)

// ErrUnknown is returned for a backend name that is not registered.
var ErrUnknown = errors.New("unknown backend")

// Factory creates a backend.
type Factory func() backend.Backend

var registry = map[string]Factory{
	pdf.Name:      func() backend.Backend { return pdf.New() },
	pdfcpu.Name:   func() backend.Backend { return pdfcpu.New() },
	fitz.Name:     func() backend.Backend { return fitz.New() },
	fitz.HTMLName: func() backend.Backend { return fitz.NewHTML() },
	text.Name:     func() backend.Backend { return text.New() },
}

// Default returns the backends benchmarked when none are named: pdf,
// fitz and pdfcpu, plus fitz-html. Builds tagged nofitz leave out both
// MuPDF backends rather than reporting them as failed on every run.
func Default() []backend.Backend {
	if !fitz.Available {
		return []backend.Backend{pdf.New(), pdfcpu.New()}
	}
	return []backend.Backend{pdf.New(), fitz.New(), pdfcpu.New(), fitz.NewHTML()}
}

// Get creates the named backend.
func Get(name string) (backend.Backend, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Select creates the named backends in order, or Default when names is
// empty. Duplicate names are ignored.
func Select(names []string) ([]backend.Backend, error) {
	if len(names) == 0 {
		return Default(), nil
	}

	seen := make(map[string]bool, len(names))
	out := make([]backend.Backend, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		b, err := Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Register adds a custom backend factory.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Names returns the registered backend names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compiled returns the names of backends that can open documents in this
// build.
func Compiled() []string {
	names := make([]string, 0, len(registry))
	for _, name := range Names() {
		if !fitz.Available && (name == fitz.Name || name == fitz.HTMLName) {
			continue
		}
		names = append(names, name)
	}
	return names
}
