package cleaner

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UnicodeCleaner normalizes page text to NFC and folds the space
// characters PDF backends emit into plain ASCII spaces, so that marker
// literals and the `\s` classes of the parser match consistently.
// Some backends emit Hangul as decomposed jamo, which never matches a
// precomposed label like "키워드" byte for byte.
type UnicodeCleaner struct {
	replacer *strings.Replacer
}

// NewUnicode creates a new Unicode cleaner.
func NewUnicode() *UnicodeCleaner {
	return &UnicodeCleaner{
		replacer: strings.NewReplacer(
			"\r\n", "\n",
			"\u00a0", " ", // no-break space
			"\u2007", " ", // figure space
			"\u202f", " ", // narrow no-break space
			"\u3000", " ", // ideographic space
			"\ufeff", "",  // byte order mark
		),
	}
}

// Name returns the cleaner type.
func (c *UnicodeCleaner) Name() string {
	return "unicode"
}

// Clean normalizes text. It never fails.
func (c *UnicodeCleaner) Clean(text string) (string, error) {
	return c.Normalize(text), nil
}

// Normalize is Clean without the error return.
func (c *UnicodeCleaner) Normalize(text string) string {
	if text == "" {
		return ""
	}
	return norm.NFC.String(c.replacer.Replace(text))
}
