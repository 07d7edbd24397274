// Package pipeline turns per-page backend text into card records:
// normalize, repair, concatenate, segment, extract.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jmylchreest/cardex/internal/logger"
	"github.com/jmylchreest/cardex/pkg/backend"
	"github.com/jmylchreest/cardex/pkg/cleaner"
	"github.com/jmylchreest/cardex/pkg/extractor"
	"github.com/jmylchreest/cardex/pkg/layout"
	"github.com/jmylchreest/cardex/pkg/record"
	"github.com/jmylchreest/cardex/pkg/segment"
)

// Pipeline is immutable after New and safe for concurrent use by several
// backends.
type Pipeline struct {
	normalizer *cleaner.UnicodeCleaner
	repairs    map[string]cleaner.Cleaner
	pages      map[string]*cleaner.ChainCleaner
	segmenter  *segment.Segmenter
	extractor  *extractor.Extractor
	log        *slog.Logger
}

// New creates a pipeline. Without options it uses layout.Default and
// repairs pages from the pdfcpu backend.
func New(opts ...Option) (*Pipeline, error) {
	cfg := Config{
		Layout:  layout.Default(),
		Repairs: make(map[string]cleaner.Cleaner),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	if _, set := cfg.Repairs[DefaultRepairBackend]; !set {
		cfg.Repairs[DefaultRepairBackend] = cleaner.NewHeaderRepair(cfg.Layout)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	normalizer := cleaner.NewUnicode()
	repairs := make(map[string]cleaner.Cleaner, len(cfg.Repairs))
	pages := make(map[string]*cleaner.ChainCleaner, len(cfg.Repairs))
	for name, r := range cfg.Repairs {
		if r != nil {
			repairs[name] = r
			pages[name] = cleaner.NewChain(normalizer, r)
		}
	}

	return &Pipeline{
		normalizer: normalizer,
		repairs:    repairs,
		pages:      pages,
		segmenter:  segment.New(cfg.Layout),
		extractor:  extractor.New(cfg.Layout),
		log:        cfg.Logger,
	}, nil
}

// Repair returns the repair registered for backend, or nil.
func (p *Pipeline) Repair(backend string) cleaner.Cleaner {
	return p.repairs[backend]
}

// Text builds the document text for pages read by the named backend.
// Empty pages are skipped; every other page is normalized, repaired when
// a repair is registered for the backend, and followed by a newline.
func (p *Pipeline) Text(backendName string, pages []string) string {
	chain := p.pages[backendName]

	var sb strings.Builder
	for i, page := range pages {
		if page == "" {
			continue
		}
		sb.WriteString(p.page(chain, backendName, i, page))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p *Pipeline) page(chain *cleaner.ChainCleaner, backendName string, i int, page string) string {
	if chain == nil {
		return p.normalizer.Normalize(page)
	}
	out, err := chain.Clean(page)
	if err != nil {
		p.log.Warn("page repair failed, using normalized text",
			"backend", backendName, "page", i+1, "error", err)
		return p.normalizer.Normalize(page)
	}
	return out
}

// Run extracts records from pages, in header order.
func (p *Pipeline) Run(backendName string, pages []string) []record.Record {
	res := p.segmenter.Segment(p.Text(backendName, pages))
	for _, header := range res.Dropped {
		p.log.Debug("dropped segment without keyword section",
			"backend", backendName, "header", header)
	}

	records := make([]record.Record, 0, len(res.Blocks))
	for _, block := range res.Blocks {
		if rec, ok := p.extractor.Extract(block); ok {
			records = append(records, rec)
		}
	}

	p.log.Debug("extraction complete",
		"backend", backendName,
		"pages", len(pages),
		"blocks", len(res.Blocks),
		"records", len(records))
	return records
}

// RunDocument reads path with b and runs the pipeline over its pages. A
// read failure yields an empty, non-nil slice and a *backend.ReadError.
func (p *Pipeline) RunDocument(ctx context.Context, b backend.Backend, path string) ([]record.Record, error) {
	pages, err := backend.Pages(ctx, b, path)
	if err != nil {
		if errors.Is(err, backend.ErrUnavailable) {
			p.log.WarnContext(ctx, "backend not compiled in", "backend", b.Name())
		} else {
			p.log.WarnContext(ctx, "failed to read document", "backend", b.Name(), "path", path, "error", err)
		}
		return []record.Record{}, err
	}
	return p.Run(b.Name(), pages), nil
}
