package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// resetLogger restores the default logger for test isolation
func resetLogger() {
	_ = Init(Options{})
}

func initBuffer(t *testing.T, opts Options) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	opts.Output = buf
	if err := Init(opts); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(resetLogger)
	return buf
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		logged    []string
		notLogged []string
	}{
		{
			name:      "default is info",
			opts:      Options{},
			logged:    []string{"info-msg", "warn-msg", "error-msg"},
			notLogged: []string{"debug-msg"},
		},
		{
			name:   "debug",
			opts:   Options{Debug: true},
			logged: []string{"debug-msg", "info-msg", "warn-msg", "error-msg"},
		},
		{
			name:      "quiet",
			opts:      Options{Quiet: true},
			logged:    []string{"error-msg"},
			notLogged: []string{"debug-msg", "info-msg", "warn-msg"},
		},
		{
			name:      "quiet overrides debug",
			opts:      Options{Debug: true, Quiet: true},
			logged:    []string{"error-msg"},
			notLogged: []string{"debug-msg", "info-msg"},
		},
		{
			name:      "explicit level overrides debug",
			opts:      Options{Debug: true, Level: "warn"},
			logged:    []string{"warn-msg", "error-msg"},
			notLogged: []string{"debug-msg", "info-msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := initBuffer(t, tt.opts)

			Debug("debug-msg")
			Info("info-msg")
			Warn("warn-msg")
			Error("error-msg")

			output := buf.String()
			for _, msg := range tt.logged {
				if !strings.Contains(output, msg) {
					t.Errorf("expected %q to be logged", msg)
				}
			}
			for _, msg := range tt.notLogged {
				if strings.Contains(output, msg) {
					t.Errorf("expected %q not to be logged", msg)
				}
			}
		})
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	buf := initBuffer(t, Options{})

	if err := Init(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}

	Info("still here")
	if !strings.Contains(buf.String(), "still here") {
		t.Error("failed Init should keep the previous logger")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := initBuffer(t, Options{JSON: true})

	Info("test message", "backend", "pdfcpu")

	output := buf.String()
	if !strings.HasPrefix(output, "{") {
		t.Errorf("expected JSON output, got %q", output)
	}
	for _, want := range []string{`"msg":"test message"`, `"level":"INFO"`, `"backend":"pdfcpu"`} {
		if !strings.Contains(output, want) {
			t.Errorf("JSON output missing %s: %s", want, output)
		}
	}
}

func TestInit_TextFormat(t *testing.T) {
	buf := initBuffer(t, Options{})

	Info("test message", "count", 42)

	output := buf.String()
	if !strings.Contains(output, "level=INFO") {
		t.Errorf("expected text level, got %q", output)
	}
	if !strings.Contains(output, "count=42") {
		t.Errorf("expected structured args, got %q", output)
	}
}

func TestInit_CustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	custom := slog.New(slog.NewTextHandler(buf, nil))
	if err := Init(Options{Logger: custom, Quiet: true}); err != nil {
		t.Fatal(err)
	}
	defer resetLogger()

	if Default() != custom {
		t.Error("Default() should return the custom logger")
	}
	Info("custom")
	if !strings.Contains(buf.String(), "custom") {
		t.Error("custom logger should ignore Quiet")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWith_ReturnsLoggerWithAttrs(t *testing.T) {
	buf := initBuffer(t, Options{})

	With("backend", "fitz").Info("test with attrs")

	if !strings.Contains(buf.String(), "backend=fitz") {
		t.Errorf("expected attributes in output: %s", buf.String())
	}
}

func TestContextFunctions(t *testing.T) {
	buf := initBuffer(t, Options{Debug: true})
	ctx := context.Background()

	DebugContext(ctx, "debug with context")
	InfoContext(ctx, "info with context")
	WarnContext(ctx, "warn with context")
	ErrorContext(ctx, "error with context")

	for _, want := range []string{"debug with context", "info with context", "warn with context", "error with context"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output", want)
		}
	}
}
