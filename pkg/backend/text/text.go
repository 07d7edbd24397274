// Package text reads plain UTF-8 text files. Pages are separated by form
// feeds, the convention of pdftotext output.
package text

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmylchreest/cardex/pkg/backend"
)

// Name is the backend identifier.
const Name = "text"

// Backend reads text files.
type Backend struct {
	name string
}

// New creates the backend.
func New() *Backend {
	return &Backend{name: Name}
}

// Named creates the backend under another identifier, so that a text dump
// of some backend's output is repaired the way that backend would be.
func Named(name string) *Backend {
	return &Backend{name: name}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return b.name
}

// Open reads the whole file.
func (b *Backend) Open(path string) (backend.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return Document(string(data)), nil
}

// Document returns an in-memory document over text.
func Document(text string) backend.Document {
	return pages(strings.Split(text, "\f"))
}

type pages []string

func (p pages) NumPage() int {
	return len(p)
}

func (p pages) Text(i int) (string, error) {
	if i < 0 || i >= len(p) {
		return "", fmt.Errorf("page %d out of range [0,%d)", i, len(p))
	}
	return p[i], nil
}

func (p pages) Close() error {
	return nil
}
