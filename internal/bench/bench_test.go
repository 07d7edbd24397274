package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cardex/internal/output"
	"github.com/jmylchreest/cardex/pkg/backend"
	"github.com/jmylchreest/cardex/pkg/backend/text"
	"github.com/jmylchreest/cardex/pkg/pipeline"
	"github.com/jmylchreest/cardex/pkg/record"
)

const cards = "1. 0 바보\n1) 키워드\n- 시작\n2. 1 마법사\n1) 키워드\n- 의지\n"

type fakeBackend struct {
	name    string
	content string
	err     error
	delay   time.Duration
	gate    *sync.WaitGroup
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Open(string) (backend.Document, error) {
	if f.gate != nil {
		f.gate.Done()
		f.gate.Wait()
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return text.Document(f.content), nil
}

type panickingDoc struct {
	backend.Document
}

func (panickingDoc) Text(int) (string, error) {
	panic("malformed xref")
}

type panickingBackend struct {
	name string
}

func (p *panickingBackend) Name() string { return p.name }

func (p *panickingBackend) Open(string) (backend.Document, error) {
	return panickingDoc{Document: text.Document(cards)}, nil
}

func newRunner(t *testing.T) *Runner {
	t.Helper()
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	p, err := pipeline.New(pipeline.WithLogger(log))
	require.NoError(t, err)
	r := NewRunner(p)
	r.Logger = log
	return r
}

func TestRunner_BackendIsolation(t *testing.T) {
	r := newRunner(t)

	backends := []backend.Backend{
		&fakeBackend{name: "good", content: cards},
		&fakeBackend{name: "broken", err: errors.New("corrupt xref table")},
		&fakeBackend{name: "unavailable", err: backend.ErrUnavailable},
		&fakeBackend{name: "also-good", content: cards},
	}

	results := r.Run(context.Background(), "catalog.pdf", backends)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Records, 2)

	assert.ErrorIs(t, results[1].Err, backend.ErrRead)
	assert.NotNil(t, results[1].Records)
	assert.Empty(t, results[1].Records)

	assert.ErrorIs(t, results[2].Err, backend.ErrUnavailable)
	assert.Empty(t, results[2].Records)

	assert.NoError(t, results[3].Err)
	assert.Equal(t, results[0].Records, results[3].Records)
}

func TestRunner_PanickingBackendIsolated(t *testing.T) {
	r := newRunner(t)

	backends := []backend.Backend{
		&fakeBackend{name: "good", content: cards},
		&panickingBackend{name: "panicky"},
	}

	var results []Result
	require.NotPanics(t, func() {
		results = r.Run(context.Background(), "catalog.pdf", backends)
	})
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Records, 2)

	assert.ErrorIs(t, results[1].Err, backend.ErrRead)
	assert.Contains(t, results[1].Err.Error(), "panic: malformed xref")
	assert.NotNil(t, results[1].Records)
	assert.Empty(t, results[1].Records)
}

func TestRunner_ResultsInBackendOrder(t *testing.T) {
	r := newRunner(t)

	backends := []backend.Backend{
		&fakeBackend{name: "slow", content: cards, delay: 50 * time.Millisecond},
		&fakeBackend{name: "fast", content: cards},
	}

	results := r.Run(context.Background(), "catalog.pdf", backends)
	assert.Equal(t, "slow", results[0].Name)
	assert.Equal(t, "fast", results[1].Name)
	assert.GreaterOrEqual(t, results[0].Duration, 50*time.Millisecond)
}

func TestRunner_RunsBackendsConcurrently(t *testing.T) {
	r := newRunner(t)

	// Every Open blocks until all backends have entered Open.
	var gate sync.WaitGroup
	gate.Add(3)
	backends := []backend.Backend{
		&fakeBackend{name: "a", content: cards, gate: &gate},
		&fakeBackend{name: "b", content: cards, gate: &gate},
		&fakeBackend{name: "c", content: cards, gate: &gate},
	}

	done := make(chan []Result)
	go func() { done <- r.Run(context.Background(), "catalog.pdf", backends) }()

	select {
	case results := <-done:
		for _, res := range results {
			assert.Len(t, res.Records, 2)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("backends did not run concurrently")
	}
}

func TestRunner_Progress(t *testing.T) {
	r := newRunner(t)

	var mu sync.Mutex
	events := map[string][]EventType{}
	r.Progress = func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events[ev.Backend] = append(events[ev.Backend], ev.Type)
	}

	r.Run(context.Background(), "x", []backend.Backend{
		&fakeBackend{name: "ok", content: cards},
		&fakeBackend{name: "bad", err: errors.New("boom")},
	})

	assert.Equal(t, []EventType{EventStarted, EventCompleted}, events["ok"])
	assert.Equal(t, []EventType{EventStarted, EventFailed}, events["bad"])
}

func TestRunner_NoBackends(t *testing.T) {
	assert.Empty(t, newRunner(t).Run(context.Background(), "x", nil))
}

func TestReport_Write(t *testing.T) {
	dir := t.TempDir()
	var table bytes.Buffer
	rep := &Report{OutDir: dir, Format: output.FormatJSON, Out: &table}

	results := []Result{
		{Name: "pdf", Records: []record.Record{{Name: "0 바보", Keywords: []string{"시작"}}}, Duration: 1500 * time.Millisecond},
		{Name: "pdfcpu", Records: []record.Record{}, Err: errors.New("pdfcpu: bad header")},
	}

	summary, err := rep.Write("data/tr_td.pdf", time.Now(), results)
	require.NoError(t, err)

	require.Len(t, summary.Backends, 2)
	assert.Equal(t, 1, summary.Backends[0].Count)
	assert.Equal(t, filepath.Join(dir, "output_pdf.json"), summary.Backends[0].OutputFile)
	assert.InDelta(t, 1.5, summary.Backends[0].Seconds, 0.001)
	assert.Equal(t, "pdfcpu: bad header", summary.Backends[1].Error)
	assert.Len(t, summary.RunID, 36)

	data, err := os.ReadFile(filepath.Join(dir, "output_pdf.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), summary.Backends[0].OutputBytes)

	empty, err := os.ReadFile(filepath.Join(dir, "output_pdfcpu.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(empty)))

	var written Summary
	raw, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &written))
	assert.Equal(t, summary.RunID, written.RunID)
	assert.Equal(t, "data/tr_td.pdf", written.Input)

	out := table.String()
	assert.Contains(t, out, "COMPARISON REPORT")
	assert.Contains(t, out, "Strategy        | Count  | Size       | Time (s)")
	assert.Contains(t, out, "pdf             | 1      |")
	assert.Contains(t, out, "1.5000")
	assert.Contains(t, out, "pdfcpu failed: pdfcpu: bad header")
}

func TestReport_YAMLExtension(t *testing.T) {
	rep := &Report{OutDir: "out", Format: output.FormatYAML}
	assert.Equal(t, filepath.Join("out", "output_fitz.yaml"), rep.OutputPath("fitz"))
}

func TestReport_WriteFailure(t *testing.T) {
	rep := &Report{OutDir: filepath.Join(t.TempDir(), "missing"), Format: output.FormatJSON}

	_, err := rep.Write("x", time.Now(), []Result{{Name: "pdf"}})
	assert.Error(t, err)
}

func TestPrintTable_HumanizedSize(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, &Summary{Backends: []BackendSummary{{Name: "fitz", Count: 78, OutputBytes: 123456, Seconds: 0.25}}})

	assert.Contains(t, buf.String(), "fitz            | 78     | 123 kB")
	assert.NotContains(t, buf.String(), "failed")
}
