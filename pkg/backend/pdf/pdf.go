// Package pdf reads PDF text with github.com/ledongthuc/pdf, one output
// line per text row. Rows are rebuilt from glyph positions.
package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jmylchreest/cardex/pkg/backend"
)

// Name is the backend identifier.
const Name = "pdf"

// Backend is the row-based PDF reader.
type Backend struct{}

// New creates the backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return Name
}

// Open opens the PDF at path. The file stays open until Close.
func (b *Backend) Open(path string) (backend.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	return &document{file: f, reader: r}, nil
}

type document struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *document) NumPage() int {
	return d.reader.NumPage()
}

// Text returns the rows of page i, top to bottom. Null pages are empty.
func (d *document) Text(i int) (string, error) {
	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}

	var sb strings.Builder
	for _, r := range groupRows(page.Content().Text) {
		r.write(&sb)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// rowTolerance is how far apart, in points, two glyph baselines may be
// and still share a row.
const rowTolerance = 2.0

// wordGap is the horizontal gap, as a fraction of the font size, above
// which a space is inserted between two glyphs that carry none.
const wordGap = 0.2

type row struct {
	yMin, yMax float64
	glyphs     []pdf.Text
}

// groupRows buckets glyphs by baseline, in the manner of a text layout
// pass: rows are ordered top to bottom and glyphs left to right. Text
// operators position lines freely, so content order alone does not give
// lines.
func groupRows(texts []pdf.Text) []*row {
	var rows []*row
	for _, t := range texts {
		if t.S == "" || t.S == "\n" {
			continue
		}

		var dst *row
		for _, r := range rows {
			if t.Y >= r.yMin-rowTolerance && t.Y <= r.yMax+rowTolerance {
				dst = r
				break
			}
		}
		if dst == nil {
			dst = &row{yMin: t.Y, yMax: t.Y}
			rows = append(rows, dst)
		}
		dst.yMin = min(dst.yMin, t.Y)
		dst.yMax = max(dst.yMax, t.Y)
		dst.glyphs = append(dst.glyphs, t)
	}

	// higher Y is higher on the page
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].yMax > rows[j].yMax
	})
	for _, r := range rows {
		sort.SliceStable(r.glyphs, func(i, j int) bool {
			return r.glyphs[i].X < r.glyphs[j].X
		})
	}
	return rows
}

func (r *row) write(sb *strings.Builder) {
	for i, t := range r.glyphs {
		if i > 0 {
			prev := r.glyphs[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > wordGap*t.FontSize && !isSpace(prev.S) && !isSpace(t.S) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
}

func isSpace(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (d *document) Close() error {
	return d.file.Close()
}
