// Package extractor turns one card block into a structured record.
//
// A block holds a header line followed by up to four numbered sections.
// Each section runs from its marker to the next marker that follows it in
// the layout, or to the end of the block, so a missing section simply
// yields empty text.
package extractor

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/cardex/pkg/cleaner"
	"github.com/jmylchreest/cardex/pkg/layout"
	"github.com/jmylchreest/cardex/pkg/record"
)

var (
	headerPrefix = regexp.MustCompile(`^\d+\.\s+`)
	keywordSplit = regexp.MustCompile(`[,.\n]`)
)

// Extractor extracts records for one layout. It is immutable and safe for
// concurrent use.
type Extractor struct {
	noise    *cleaner.NoiseCleaner
	sections [layout.SectionCount]*regexp.Regexp
	labels   [layout.SectionCount]string
	first    string
}

// New creates an extractor for the given layout.
func New(l layout.Layout) *Extractor {
	e := &Extractor{
		noise: cleaner.NewNoise(l),
		first: l.First().Literal(),
	}

	for i, s := range l.Sections {
		stops := make([]string, 0, len(l.Sections)-i)
		for _, next := range l.Sections[i+1:] {
			stops = append(stops, next.StopPattern())
		}
		stops = append(stops, "$")

		e.sections[i] = regexp.MustCompile(`(?s)` + s.Pattern() + `[\s:：]*(.*?)(?:` + strings.Join(stops, "|") + `)`)
		e.labels[i] = s.Label
	}
	return e
}

// Sections returns the cleaned text of the four sections of block, in
// layout order. Missing sections are empty.
func (e *Extractor) Sections(block string) [layout.SectionCount]string {
	var out [layout.SectionCount]string
	for i, re := range e.sections {
		if m := re.FindStringSubmatch(block); m != nil {
			out[i] = e.noise.Text(m[1])
		}
	}
	return out
}

// Name returns the card name from the block's first line: the index
// prefix is removed, and anything from the first section marker on is cut
// off in case the header and section one ended up on the same line.
func (e *Extractor) Name(block string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(block), "\n")
	name := headerPrefix.ReplaceAllString(strings.TrimSpace(first), "")
	if before, _, found := strings.Cut(name, e.first); found {
		name = strings.TrimSpace(before)
	}
	return name
}

// Extract parses block. The second return value is false when the block
// has no keywords and no meanings, in which case it should be skipped.
func (e *Extractor) Extract(block string) (record.Record, bool) {
	sections := e.Sections(block)

	rec := record.Record{
		Name:             e.Name(block),
		Keywords:         splitKeywords(sections[0]),
		MeaningPrimary:   e.primary(sections[1], sections[2]),
		MeaningSecondary: sections[3],
	}

	if err := rec.Validate(); err != nil {
		return record.Record{}, false
	}
	return rec, true
}

func (e *Extractor) primary(description, practice string) string {
	var sb strings.Builder
	if description != "" {
		sb.WriteString("[" + e.labels[1] + "]\n" + description + "\n\n")
	}
	if practice != "" {
		sb.WriteString("[" + e.labels[2] + "]\n" + practice)
	}
	return strings.TrimSpace(sb.String())
}

// splitKeywords splits section text on commas, periods and newlines and
// strips one leading bullet dash from each token.
func splitKeywords(text string) []string {
	if text == "" {
		return nil
	}

	var keywords []string
	for _, k := range keywordSplit.Split(text, -1) {
		k = strings.TrimSpace(k)
		if strings.HasPrefix(k, "-") {
			k = strings.TrimSpace(k[1:])
		}
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
