// Package layout describes the vocabulary of a printed card catalog: the
// numbered section markers inside each entry, the words that may follow a
// header index, and the table rows that leak into extracted text.
//
// Every parsing stage builds its regular expressions from a Layout, so a
// catalog with different labels can be handled by loading another layout
// file instead of changing code.
package layout

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SectionCount is the number of labeled sections in every entry.
const SectionCount = 4

// Section is one numbered marker such as "2) 회화적 설명".
type Section struct {
	Index int    `json:"index" yaml:"index" validate:"min=1,max=4"`
	Label string `json:"label" yaml:"label" validate:"required"`
}

// Literal returns the marker as it appears in well-formed text.
func (s Section) Literal() string {
	return fmt.Sprintf("%d) %s", s.Index, s.Label)
}

// Pattern matches the marker with arbitrary whitespace between the index
// and each word of the label.
func (s Section) Pattern() string {
	words := strings.Fields(s.Label)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return fmt.Sprintf(`%d\)\s*%s`, s.Index, strings.Join(words, `\s*`))
}

// StopPattern matches the index and the first label word only. It
// terminates the preceding section even when the rest of the label was
// mangled by extraction.
func (s Section) StopPattern() string {
	words := strings.Fields(s.Label)
	first := ""
	if len(words) > 0 {
		first = regexp.QuoteMeta(words[0])
	}
	return fmt.Sprintf(`%d\)\s*%s`, s.Index, first)
}

// Layout is the full catalog vocabulary.
type Layout struct {
	// Sections in document order: keywords, description, practice, tip.
	Sections []Section `json:"sections" yaml:"sections" validate:"len=4,dive"`

	// HeaderTokens are the words that may follow "N. " on a header line,
	// besides a bare number. Required when StrictHeaders is set.
	HeaderTokens []string `json:"header_tokens" yaml:"header_tokens" validate:"dive,required"`

	// NoisePhrases drop any line that contains them.
	NoisePhrases []string `json:"noise_phrases" yaml:"noise_phrases" validate:"dive,required"`

	// RatingSymbols is the alphabet of the rating table (e.g. "상중하").
	RatingSymbols string `json:"rating_symbols" yaml:"rating_symbols" validate:"required"`

	// StrictHeaders stops the header repair from treating "N. <digits>" as
	// a header start. Off by default, which keeps decimal false positives
	// such as "3. 5 units".
	StrictHeaders bool `json:"strict_headers" yaml:"strict_headers"`
}

// Default returns the layout of the Korean tarot reference the tool was
// written for.
func Default() Layout {
	return Layout{
		Sections: []Section{
			{Index: 1, Label: "키워드"},
			{Index: 2, Label: "회화적 설명"},
			{Index: 3, Label: "실전 상담"},
			{Index: 4, Label: "상담 TIP"},
		},
		HeaderTokens: []string{
			"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
			"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
			"컵", "지팡이", "동전", "검",
		},
		NoisePhrases:  []string{"사랑 돈 사업", "승진 취업 매매", "사랑돈사업"},
		RatingSymbols: "상중하",
	}
}

// Validate checks the layout is usable.
func (l Layout) Validate() error {
	if err := validator.New().Struct(l); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	if l.StrictHeaders && len(l.HeaderTokens) == 0 {
		return errors.New("invalid layout: strict_headers requires at least one header token")
	}
	for i, s := range l.Sections {
		if s.Index != i+1 {
			return fmt.Errorf("invalid layout: section %d has index %d", i+1, s.Index)
		}
	}
	return nil
}

// First returns the mandatory first section.
func (l Layout) First() Section {
	return l.Sections[0]
}

// RatingClass returns a regexp character class of the rating alphabet.
func (l Layout) RatingClass() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, r := range l.RatingSymbols {
		if r == '-' {
			sb.WriteByte('\\')
		}
		sb.WriteString(regexp.QuoteMeta(string(r)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// HeaderRepairPattern matches a header start that lost its newline:
// digits, a period, whitespace, then digits or a header token, then
// whitespace.
func (l Layout) HeaderRepairPattern() string {
	alts := make([]string, 0, len(l.HeaderTokens)+1)
	if !l.StrictHeaders {
		alts = append(alts, `\d+`)
	}
	for _, t := range l.HeaderTokens {
		alts = append(alts, regexp.QuoteMeta(t))
	}
	return `\d+\.\s+(?:` + strings.Join(alts, "|") + `)\s+`
}

// Load reads a YAML layout file. Fields absent from the file keep their
// Default values.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML layout data on top of Default.
func Parse(data []byte) (Layout, error) {
	l := Default()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}
