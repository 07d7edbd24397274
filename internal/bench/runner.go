// Package bench runs the extraction pipeline once per backend and reports
// how the backends compare.
package bench

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/cardex/internal/logger"
	"github.com/jmylchreest/cardex/pkg/backend"
	"github.com/jmylchreest/cardex/pkg/pipeline"
	"github.com/jmylchreest/cardex/pkg/record"
)

// Result is the outcome of one backend. Err is set when the backend could
// not read the document, in which case Records is empty.
type Result struct {
	Name     string
	Records  []record.Record
	Duration time.Duration
	Err      error
}

// EventType identifies a progress event.
type EventType int

const (
	EventStarted EventType = iota
	EventCompleted
	EventFailed
)

// Event reports the progress of one backend.
type Event struct {
	Type     EventType
	Backend  string
	Records  int
	Duration time.Duration
	Err      error
}

// Runner runs backends concurrently against one pipeline.
type Runner struct {
	Pipeline *pipeline.Pipeline
	Logger   *slog.Logger

	// Progress, when set, is called from the backend goroutines.
	Progress func(Event)
}

// NewRunner creates a runner for p.
func NewRunner(p *pipeline.Pipeline) *Runner {
	return &Runner{Pipeline: p, Logger: logger.Default()}
}

// Run reads path with every backend, one goroutine each, and returns the
// results in the order of backends. A failing backend never cancels the
// others; its result carries the error instead.
func (r *Runner) Run(ctx context.Context, path string, backends []backend.Backend) []Result {
	results := make([]Result, len(backends))
	if len(backends) == 0 {
		return results
	}

	log := r.Logger
	if log == nil {
		log = logger.Default()
	}

	var g errgroup.Group
	g.SetLimit(len(backends))

	for i, b := range backends {
		g.Go(func() error {
			r.emit(Event{Type: EventStarted, Backend: b.Name()})
			log.DebugContext(ctx, "running backend", "backend", b.Name(), "path", path)

			start := time.Now()
			records, err := r.Pipeline.RunDocument(ctx, b, path)
			elapsed := time.Since(start)

			results[i] = Result{
				Name:     b.Name(),
				Records:  records,
				Duration: elapsed,
				Err:      err,
			}

			ev := Event{Type: EventCompleted, Backend: b.Name(), Records: len(records), Duration: elapsed, Err: err}
			if err != nil {
				ev.Type = EventFailed
			}
			r.emit(ev)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Runner) emit(ev Event) {
	if r.Progress != nil {
		r.Progress(ev)
	}
}
