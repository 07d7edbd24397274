//go:build nofitz

package fitz

import "github.com/jmylchreest/cardex/pkg/backend"

// Available reports whether MuPDF support was compiled in.
const Available = false

// Backend is a stub that fails to open anything. It replaces the MuPDF
// reader in builds tagged nofitz.
type Backend struct {
	html bool
}

// New returns the stub backend.
func New() *Backend {
	return &Backend{}
}

// NewHTML returns the stub backend in HTML mode.
func NewHTML() *Backend {
	return &Backend{html: true}
}

// Name returns "fitz" or "fitz-html".
func (b *Backend) Name() string {
	if b.html {
		return HTMLName
	}
	return Name
}

// Open returns backend.ErrUnavailable.
func (b *Backend) Open(_ string) (backend.Document, error) {
	return nil, backend.ErrUnavailable
}
