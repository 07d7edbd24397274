//go:build !nofitz

package fitz

import (
	"fmt"

	gofitz "github.com/gen2brain/go-fitz"

	"github.com/jmylchreest/cardex/pkg/backend"
)

// Available reports whether MuPDF support was compiled in.
const Available = true

// Backend is the MuPDF reader. In HTML mode each page is rendered to
// MuPDF's HTML output and flattened to one line per paragraph.
type Backend struct {
	html bool
}

// New creates the plain-text MuPDF backend.
func New() *Backend {
	return &Backend{}
}

// NewHTML creates the HTML-mode MuPDF backend.
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

// Open opens the document at path.
func (b *Backend) Open(path string) (backend.Document, error) {
	doc, err := gofitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return &document{doc: doc, html: b.html}, nil
}

type document struct {
	doc  *gofitz.Document
	html bool
}

func (d *document) NumPage() int {
	return d.doc.NumPage()
}

func (d *document) Text(i int) (string, error) {
	if !d.html {
		return d.doc.Text(i)
	}

	page, err := d.doc.HTML(i, false)
	if err != nil {
		return "", err
	}
	return HTMLText(page)
}

func (d *document) Close() error {
	return d.doc.Close()
}
