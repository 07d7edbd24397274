// Package segment splits document text into candidate card blocks.
//
// A block starts at a header line (an index, a period, whitespace and a
// label) and runs to the next header line. Numbered lines that are not
// cards, such as page numbers or enumerations in the preface, are
// discarded because they never contain the first section marker.
package segment

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/cardex/pkg/layout"
)

// headerLine matches a newline followed by a header line. The capture is
// the header itself; \s* may span blank lines before it.
var headerLine = regexp.MustCompile(`\n(\s*\d+\.\s+[^\n]+)`)

// Result is the outcome of segmenting one document.
type Result struct {
	// Blocks are the candidate blocks in document order.
	Blocks []string

	// Dropped are the header lines whose span had no first section marker.
	Dropped []string
}

// Segmenter splits text into blocks for one layout.
type Segmenter struct {
	marker string
}

// New creates a segmenter that requires the layout's first section marker.
func New(l layout.Layout) *Segmenter {
	return &Segmenter{marker: l.First().Literal()}
}

// Split returns the candidate blocks of text in document order.
func (s *Segmenter) Split(text string) []string {
	return s.Segment(text).Blocks
}

// Segment splits text and also reports the headers it discarded.
func (s *Segmenter) Segment(text string) Result {
	text = "\n" + text
	locs := headerLine.FindAllStringSubmatchIndex(text, -1)

	var res Result
	for i, loc := range locs {
		header := strings.TrimSpace(text[loc[2]:loc[3]])

		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := header + "\n" + text[loc[1]:end]

		if !strings.Contains(block, s.marker) {
			res.Dropped = append(res.Dropped, header)
			continue
		}
		res.Blocks = append(res.Blocks, block)
	}
	return res
}
