// Package backend defines the interface shared by the document readers
// that turn a file into per-page raw text.
package backend

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRead marks any failure to open or read a document.
	ErrRead = errors.New("document read failed")

	// ErrUnavailable is returned by backends that were not compiled in.
	ErrUnavailable = errors.New("backend not available in this build")
)

// Backend opens documents.
type Backend interface {
	// Name is the identifier used for repair lookup, output file names
	// and the report.
	Name() string

	// Open opens the document at path.
	Open(path string) (Document, error)
}

// Document is an open document. Pages are numbered from 0.
type Document interface {
	NumPage() int
	Text(i int) (string, error)
	Close() error
}

// ReadError describes a failure of one backend on one document.
// Page is -1 when the failure happened before any page was read.
type ReadError struct {
	Backend string
	Page    int
	Err     error
}

func (e *ReadError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("%s: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s: page %d: %v", e.Backend, e.Page+1, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is reports every ReadError as ErrRead.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// NewReadError wraps err for backend name. A nil err yields nil.
func NewReadError(name string, page int, err error) error {
	if err == nil {
		return nil
	}
	var re *ReadError
	if errors.As(err, &re) {
		return err
	}
	return &ReadError{Backend: name, Page: page, Err: err}
}

// Pages opens path with b and reads every page in order. ctx is checked
// between pages; cancellation is reported as a ReadError. A panic inside
// the backend is recovered and reported as a ReadError for the page being
// read.
func Pages(ctx context.Context, b Backend, path string) (pages []string, err error) {
	page := -1
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = NewReadError(b.Name(), page, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, NewReadError(b.Name(), page, err)
	}

	doc, err := b.Open(path)
	if err != nil {
		return nil, NewReadError(b.Name(), page, err)
	}
	defer func() { _ = doc.Close() }()

	pages = make([]string, 0, doc.NumPage())
	for page = 0; page < doc.NumPage(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, NewReadError(b.Name(), page, err)
		}
		text, err := doc.Text(page)
		if err != nil {
			return nil, NewReadError(b.Name(), page, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
