// Package pdftest writes small single-font PDF files for backend tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LineSpacing is the baseline distance between lines, in points.
const LineSpacing = 20

// Page writes a one-page PDF to a temp directory and returns its path.
// Each line is an ASCII string shown with Tj, moved down with Td, so the
// content stream carries no line breaks of its own.
func Page(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.pdf")
	if err := os.WriteFile(path, Build(lines...), 0o644); err != nil {
		t.Fatalf("failed to write PDF: %v", err)
	}
	return path
}

// Build returns the bytes of a one-page PDF showing lines in Helvetica.
func Build(lines ...string) []byte {
	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			fmt.Fprintf(&content, "0 -%d Td\n", LineSpacing)
		}
		fmt.Fprintf(&content, "(%s) Tj\n", escape(line))
	}
	content.WriteString("ET")

	widths := strings.TrimSpace(strings.Repeat("500 ", 126-32+1))
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica " +
			"/Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 " +
			"/Widths [" + widths + "] >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(s)
}
