package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldDirty := Version, Dirty
	defer func() { Version, Dirty = oldVersion, oldDirty }()

	Version, Dirty = "1.2.0", "false"
	if got := String(); got != "1.2.0" {
		t.Errorf("String() = %q", got)
	}

	Dirty = "true"
	if got := String(); got != "1.2.0-dirty" {
		t.Errorf("String() = %q", got)
	}
}

func TestInfo_Full(t *testing.T) {
	full := Get("pdf", "pdfcpu").Full()

	for _, want := range []string{"cardex ", "Commit:", "OS/Arch:", "Backends:   pdf, pdfcpu"} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() missing %q:\n%s", want, full)
		}
	}
	if strings.Contains(Get().Full(), "Backends:") {
		t.Error("Backends line should be omitted when none are given")
	}
}
