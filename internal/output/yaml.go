package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/cardex/pkg/record"
)

// YAMLWriter writes records as a YAML sequence.
type YAMLWriter struct {
	w     *bufio.Writer
	items []record.Record
	done  bool
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]record.Record, 0),
	}
}

// Write buffers a single record.
func (w *YAMLWriter) Write(rec record.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers records.
func (w *YAMLWriter) WriteAll(recs []record.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records and clears the buffer.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(w.items); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	w.items = w.items[:0]
	w.done = true
	return w.w.Flush()
}

// Close flushes records not yet written. The empty list is written
// only if nothing was flushed before.
func (w *YAMLWriter) Close() error {
	if w.done && len(w.items) == 0 {
		return nil
	}
	return w.Flush()
}
