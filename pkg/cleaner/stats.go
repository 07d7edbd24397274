package cleaner

import (
	"fmt"
	"strings"
)

// Stats captures what the noise cleaner removed.
type Stats struct {
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	LinesIn   int `json:"lines_in"`
	LinesKept int `json:"lines_kept"`

	// Removals per rule
	PhraseRemovals    int `json:"phrase_removals"`
	RatingRowRemovals int `json:"rating_row_removals"`
	RatingRunRemovals int `json:"rating_run_removals"`
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// LinesRemoved returns the total number of dropped lines.
func (s *Stats) LinesRemoved() int {
	return s.PhraseRemovals + s.RatingRowRemovals + s.RatingRunRemovals
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))
	sb.WriteString(fmt.Sprintf("Lines: %d in, %d kept, %d removed\n",
		s.LinesIn, s.LinesKept, s.LinesRemoved()))

	if s.LinesRemoved() > 0 {
		sb.WriteString(fmt.Sprintf("Removed by rule: phrase=%d, rating_row=%d, rating_run=%d\n",
			s.PhraseRemovals, s.RatingRowRemovals, s.RatingRunRemovals))
	}

	return sb.String()
}
