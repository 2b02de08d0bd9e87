package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}

	for _, line := range []string{"let a = 1", "  ", "let b = 2", "let b = 2", "let a = 1"} {
		if _, err := h.Write(line); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"let b = 2", "let a = 1"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "let b = 2\nlet a = 1\n" {
		t.Errorf("file = %q", got)
	}
}

func TestHistoryEntry(t *testing.T) {
	h := NewHistory("")

	if _, err := h.Write("exit"); err != nil {
		t.Fatal(err)
	}

	if got, err := h.Entry(0); err != nil || got != "exit" {
		t.Errorf("Entry(0) = %q, %v", got, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v, want ErrOutOfBounds", i, err)
		}
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}
