// Package output serializes card records.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/cardex/pkg/record"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// DefaultIndent matches the four-space indentation of existing catalog
// dumps.
const DefaultIndent = "    "

// ParseFormat parses a format name, case-insensitively. "yml" is accepted
// as an alias for yaml.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Writer handles record serialization.
type Writer interface {
	// Write outputs a single record.
	Write(rec record.Record) error

	// WriteAll outputs multiple records.
	WriteAll(recs []record.Record) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile writes recs to path in the given format, replacing any
// existing file, and returns the number of bytes written.
func WriteFile(path string, format Format, recs []record.Record, opts ...WriterOption) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	cw := &countingWriter{w: f}
	w, err := NewWriter(cw, format, opts...)
	if err != nil {
		_ = f.Close()
		return 0, err
	}

	if err := w.WriteAll(recs); err != nil {
		_ = f.Close()
		return cw.n, fmt.Errorf("failed to write records: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return cw.n, fmt.Errorf("failed to write records: %w", err)
	}
	if err := f.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to close output file: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
