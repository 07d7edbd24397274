package bench

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/jmylchreest/cardex/internal/output"
)

// SummaryFile is the name of the run summary written next to the outputs.
const SummaryFile = "summary.json"

// Summary describes one benchmark run.
type Summary struct {
	RunID     string           `json:"run_id"`
	Input     string           `json:"input"`
	StartedAt time.Time        `json:"started_at"`
	Format    output.Format    `json:"format"`
	Backends  []BackendSummary `json:"backends"`
}

// BackendSummary is one row of the comparison.
type BackendSummary struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	OutputFile  string  `json:"output_file"`
	OutputBytes int64   `json:"output_bytes"`
	Seconds     float64 `json:"seconds"`
	Error       string  `json:"error,omitempty"`
}

// Report writes per-backend output files and the comparison table.
type Report struct {
	OutDir string
	Format output.Format

	// Out receives the comparison table.
	Out io.Writer
}

// OutputPath returns the output file of the named backend.
func (r *Report) OutputPath(name string) string {
	return filepath.Join(r.OutDir, "output_"+name+"."+r.Format.Extension())
}

// Write writes one output file per result, in order, then the summary
// file, and prints the table. Failed backends get an empty output file.
func (r *Report) Write(input string, startedAt time.Time, results []Result) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Input:     input,
		StartedAt: startedAt.UTC(),
		Format:    r.Format,
		Backends:  make([]BackendSummary, 0, len(results)),
	}

	for _, res := range results {
		path := r.OutputPath(res.Name)
		size, err := output.WriteFile(path, r.Format, res.Records)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", res.Name, err)
		}

		row := BackendSummary{
			Name:        res.Name,
			Count:       len(res.Records),
			OutputFile:  path,
			OutputBytes: size,
			Seconds:     res.Duration.Seconds(),
		}
		if res.Err != nil {
			row.Error = res.Err.Error()
		}
		summary.Backends = append(summary.Backends, row)
	}

	if err := output.WriteJSONFile(filepath.Join(r.OutDir, SummaryFile), summary); err != nil {
		return nil, err
	}

	if r.Out != nil {
		PrintTable(r.Out, summary)
	}
	return summary, nil
}

// PrintTable prints the comparison table of s.
func PrintTable(w io.Writer, s *Summary) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(w, "\n%s\n COMPARISON REPORT\n%s\n", rule, rule)
	fmt.Fprintf(w, "%-15s | %-6s | %-10s | %-8s\n", "Strategy", "Count", "Size", "Time (s)")
	fmt.Fprintln(w, strings.Repeat("-", 48))

	var failed []BackendSummary
	for _, b := range s.Backends {
		fmt.Fprintf(w, "%-15s | %-6d | %-10s | %-8.4f\n",
			b.Name, b.Count, humanize.Bytes(uint64(b.OutputBytes)), b.Seconds)
		if b.Error != "" {
			failed = append(failed, b)
		}
	}

	if len(failed) > 0 {
		fmt.Fprintln(w)
		for _, b := range failed {
			fmt.Fprintf(w, "%s failed: %s\n", b.Name, b.Error)
		}
	}
}
