package controller

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	if ui, ok := NewUI(cmd, true).(*TUI); !ok || ui == nil {
		t.Fatalf("NewUI(cmd, true) = %T, want *TUI", NewUI(cmd, true))
	}

	if ui, ok := NewUI(cmd, false).(*SimpleUI); !ok || ui == nil {
		t.Fatalf("NewUI(cmd, false) = %T, want *SimpleUI", NewUI(cmd, false))
	}
}

func TestIsTTY_NotATerminal(t *testing.T) {
	report, err := os.CreateTemp(t.TempDir(), "report-*.txt")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer report.Close()

	writers := map[string]io.Writer{
		"regular file": report,
		"buffer":       &bytes.Buffer{},
	}

	if devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0); err == nil {
		defer devNull.Close()

		writers["null device"] = devNull
	}

	for name, w := range writers {
		if IsTTY(w) {
			t.Errorf("IsTTY(%s) = true, want false", name)
		}
	}
}

func TestIsTTY_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")

	if IsTTY(os.Stdout) {
		t.Error("IsTTY with TERM=dumb = true, want false")
	}
}
