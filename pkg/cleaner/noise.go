package cleaner

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/cardex/pkg/layout"
)

// NoiseCleaner drops lines that come from the catalog's rating table
// rather than from card text. A line is noise when it contains a known
// table phrase or consists only of rating symbols, either spaced out or
// as a glued run of five or more.
type NoiseCleaner struct {
	phrases   []string
	ratingRow *regexp.Regexp
	ratingRun *regexp.Regexp
}

// NewNoise creates a noise cleaner for the given layout.
func NewNoise(l layout.Layout) *NoiseCleaner {
	class := l.RatingClass()
	return &NoiseCleaner{
		phrases:   append([]string(nil), l.NoisePhrases...),
		ratingRow: regexp.MustCompile(`^\s*` + class + `(?:\s+` + class + `)+\s*$`),
		ratingRun: regexp.MustCompile(`^` + class + `{5,}$`),
	}
}

// Name returns the cleaner type.
func (c *NoiseCleaner) Name() string {
	return "noise"
}

// Clean removes noise lines and trims the result. It never fails.
func (c *NoiseCleaner) Clean(text string) (string, error) {
	out, _ := c.CleanWithStats(text)
	return out, nil
}

// Text is Clean without the error return, for callers inside the parser.
func (c *NoiseCleaner) Text(text string) string {
	out, _ := c.CleanWithStats(text)
	return out
}

// CleanWithStats removes noise lines and reports what was dropped.
func (c *NoiseCleaner) CleanWithStats(text string) (string, *Stats) {
	stats := &Stats{InputBytes: len(text)}
	if text == "" {
		return "", stats
	}

	lines := strings.Split(text, "\n")
	stats.LinesIn = len(lines)
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		switch c.classify(line) {
		case rulePhrase:
			stats.PhraseRemovals++
		case ruleRatingRow:
			stats.RatingRowRemovals++
		case ruleRatingRun:
			stats.RatingRunRemovals++
		default:
			kept = append(kept, line)
		}
	}

	out := strings.TrimSpace(strings.Join(kept, "\n"))
	stats.LinesKept = len(kept)
	stats.OutputBytes = len(out)
	return out, stats
}

type rule int

const (
	ruleKeep rule = iota
	rulePhrase
	ruleRatingRow
	ruleRatingRun
)

func (c *NoiseCleaner) classify(line string) rule {
	for _, p := range c.phrases {
		if strings.Contains(line, p) {
			return rulePhrase
		}
	}
	if c.ratingRow.MatchString(line) {
		return ruleRatingRow
	}
	if c.ratingRun.MatchString(strings.TrimSpace(line)) {
		return ruleRatingRun
	}
	return ruleKeep
}
