package cleaner

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/cardex/pkg/layout"
)

// HeaderRepair reinserts the line breaks that some extraction backends
// drop between a card header, its section markers and the surrounding
// text. It is registered only for backends known to clump lines.
//
// A break is inserted before every header start ("N. 0 ", "N. 컵 ", ...)
// and before every section marker, unless the match already begins a
// line. The header pattern accepts a bare number after "N. ", so decimal
// values written as "3. 5" are split as well; set Layout.StrictHeaders to
// disable that.
type HeaderRepair struct {
	patterns []*regexp.Regexp
}

// NewHeaderRepair creates the repair for the given layout.
func NewHeaderRepair(l layout.Layout) *HeaderRepair {
	patterns := make([]*regexp.Regexp, 0, len(l.Sections)+1)
	patterns = append(patterns, regexp.MustCompile(l.HeaderRepairPattern()))
	for _, s := range l.Sections {
		patterns = append(patterns, regexp.MustCompile(s.StopPattern()))
	}
	return &HeaderRepair{patterns: patterns}
}

// Name returns the cleaner type.
func (r *HeaderRepair) Name() string {
	return "header-repair"
}

// Clean applies Repair. It never fails.
func (r *HeaderRepair) Clean(text string) (string, error) {
	return r.Repair(text), nil
}

// Repair runs the header pass, then one pass per section marker.
func (r *HeaderRepair) Repair(text string) string {
	for _, re := range r.patterns {
		text = breakBefore(text, re)
	}
	return text
}

// breakBefore inserts '\n' before each match of re that is not already
// at the start of a line. The start of text counts as not preceded.
func breakBefore(text string, re *regexp.Regexp) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(locs))
	last := 0
	for _, loc := range locs {
		start := loc[0]
		if start > 0 && text[start-1] == '\n' {
			continue
		}
		sb.WriteString(text[last:start])
		sb.WriteByte('\n')
		last = start
	}
	sb.WriteString(text[last:])
	return sb.String()
}
