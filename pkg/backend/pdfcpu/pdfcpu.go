// Package pdfcpu reads PDF text by scanning page content streams decoded
// by github.com/pdfcpu/pdfcpu.
//
// Only text-showing operators are interpreted. Text positioning becomes a
// space, so lines that the page lays out with Td run together; the
// pipeline registers a header repair for this backend to undo that.
package pdfcpu

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jmylchreest/cardex/pkg/backend"
)

// Name is the backend identifier.
const Name = "pdfcpu"

// Backend is the content-stream PDF reader.
type Backend struct {
	conf *model.Configuration
}

// New creates the backend with pdfcpu's default configuration.
func New() *Backend {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Backend{conf: conf}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return Name
}

// Open reads and validates the whole PDF into memory.
func (b *Backend) Open(path string) (backend.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx, err := api.ReadValidateAndOptimize(f, b.conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &document{ctx: ctx}, nil
}

type document struct {
	ctx *model.Context
}

func (d *document) NumPage() int {
	return d.ctx.PageCount
}

func (d *document) Text(i int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(d.ctx, i+1)
	if err != nil {
		return "", fmt.Errorf("failed to extract page content: %w", err)
	}
	if r == nil {
		return "", nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return ExtractText(data), nil
}

func (d *document) Close() error {
	return nil
}
