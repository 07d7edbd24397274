// Package fitz reads PDF text through MuPDF using github.com/gen2brain/go-fitz.
// go-fitz bundles MuPDF; build with -tags nofitz to leave it out, in which
// case both backends report backend.ErrUnavailable.
package fitz

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Name is the plain-text backend identifier.
	Name = "fitz"

	// HTMLName is the HTML-mode backend identifier.
	HTMLName = "fitz-html"
)

// HTMLText flattens a MuPDF page rendering to text, one line per
// paragraph. Spans inside a paragraph are concatenated as is; <br>
// becomes a line break.
func HTMLText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse page HTML: %w", err)
	}

	doc.Find("br").ReplaceWithHtml("\n")

	var sb strings.Builder
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
		sb.WriteByte('\n')
	})
	return sb.String(), nil
}
