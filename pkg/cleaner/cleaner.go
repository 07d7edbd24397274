// Package cleaner provides the text transforms applied to extracted page
// text before and after segmentation: noise-line removal, Unicode
// normalization and the newline repair for backends that clump lines.
package cleaner

// Cleaner transforms a fragment of extracted text.
// Implementations are pure and safe for concurrent use.
type Cleaner interface {
	// Clean returns the transformed text.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
