package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmylchreest/cardex/pkg/record"
)

// JSONWriter writes records as one JSON array, even when there is a
// single record or none.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []record.Record
	done   bool
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]record.Record, 0),
	}
}

// Write buffers a single record.
func (w *JSONWriter) Write(rec record.Record) error {
	w.items = append(w.items, rec)
	return nil
}

// WriteAll buffers records.
func (w *JSONWriter) WriteAll(recs []record.Record) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a JSON array and clears the
// buffer.
func (w *JSONWriter) Flush() error {
	indent := ""
	if w.pretty {
		indent = w.indent
	}
	if err := encodeJSON(w.w, w.items, indent); err != nil {
		return err
	}
	w.items = w.items[:0]
	w.done = true
	return w.w.Flush()
}

// Close flushes records not yet written. The empty list is written
// only if nothing was flushed before.
func (w *JSONWriter) Close() error {
	if w.done && len(w.items) == 0 {
		return nil
	}
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL).
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{w: bw, enc: enc}
}

// Write writes a single record as a JSON line.
func (w *JSONLWriter) Write(rec record.Record) error {
	if err := w.enc.Encode(rec); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll writes records as JSON lines.
func (w *JSONLWriter) WriteAll(recs []record.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}

// WriteJSONFile writes v to path as indented JSON.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := encodeJSON(f, v, DefaultIndent); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func encodeJSON(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}
