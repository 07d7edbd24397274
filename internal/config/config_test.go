package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/jmylchreest/cardex/internal/output"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Bench.Inputs) != 2 || cfg.Bench.Inputs[0] != "data/tr_td.pdf" {
		t.Errorf("Inputs = %v", cfg.Bench.Inputs)
	}
	if cfg.Bench.OutDir != "." {
		t.Errorf("OutDir = %q", cfg.Bench.OutDir)
	}
	f, err := cfg.Bench.OutputFormat()
	if err != nil || f != output.FormatJSON {
		t.Errorf("OutputFormat() = %q, %v", f, err)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	err := v.ReadConfig(strings.NewReader(`
debug: true
layout: layouts/english.yaml
bench:
  out_dir: results
  format: yaml
  backend: [pdf, pdfcpu]
`))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Debug || cfg.Layout != "layouts/english.yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Bench.OutDir != "results" || cfg.Bench.Format != "yaml" {
		t.Errorf("Bench = %+v", cfg.Bench)
	}
	if len(cfg.Bench.Backends) != 2 || cfg.Bench.Backends[1] != "pdfcpu" {
		t.Errorf("Backends = %v", cfg.Bench.Backends)
	}
}

func TestConfig_LoadLayout(t *testing.T) {
	cfg := &Config{}
	l, err := cfg.LoadLayout()
	if err != nil {
		t.Fatalf("LoadLayout() error = %v", err)
	}
	if l.First().Label != "키워드" {
		t.Errorf("expected default layout, got %+v", l.First())
	}

	cfg.Layout = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.LoadLayout(); err == nil {
		t.Error("expected error for missing layout file")
	}
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "tr_td.pdf")
	fallback := filepath.Join(dir, "tr_dt.pdf")
	if err := os.WriteFile(fallback, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, fellBack, err := ResolveInput([]string{primary, fallback})
	if err != nil {
		t.Fatalf("ResolveInput() error = %v", err)
	}
	if got != fallback || !fellBack {
		t.Errorf("ResolveInput() = %q, %v; want fallback", got, fellBack)
	}

	if err := os.WriteFile(primary, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, fellBack, _ = ResolveInput([]string{primary, fallback})
	if got != primary || fellBack {
		t.Errorf("ResolveInput() = %q, %v; want primary", got, fellBack)
	}
}

func TestResolveInput_None(t *testing.T) {
	dir := t.TempDir()
	_, _, err := ResolveInput([]string{filepath.Join(dir, "a.pdf"), dir})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("error = %v, want ErrNoInput", err)
	}
}
