package plaintext

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNormalise(t *testing.T) {
	n := New()

	path := writeFile(t, "notes.txt", "First paragraph.\n\nSecond   paragraph.\n")

	doc, err := n.Normalise(path, map[string]any{"industry": "retail"})
	if err != nil {
		t.Fatalf("Normalise() error = %v", err)
	}

	if doc.Text != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("text = %q", doc.Text)
	}
	if doc.ID == "" || len(doc.ID) != 16 {
		t.Errorf("expected 16-char document ID, got %q", doc.ID)
	}
	if doc.Metadata["industry"] != "retail" {
		t.Error("caller metadata not attached")
	}
	if doc.Metadata["file_name"] != "notes.txt" {
		t.Errorf("file_name = %v", doc.Metadata["file_name"])
	}
}

func TestNormaliseStableID(t *testing.T) {
	n := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("same content"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := n.Normalise(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := n.Normalise(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("same path and content produced different IDs: %q vs %q", first.ID, second.ID)
	}
}

func TestNormaliseUnsupportedType(t *testing.T) {
	n := New()
	path := writeFile(t, "report.pdf", "binary")

	_, err := n.Normalise(path, nil)
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("error = %v, want ErrUnsupportedType", err)
	}
}

func TestNormaliseEmptyFile(t *testing.T) {
	n := New()
	path := writeFile(t, "empty.txt", "   \n\n  ")

	_, err := n.Normalise(path, nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "a    b", "a b"},
		{"ideographic space", "a　b", "a b"},
		{"keeps paragraph break", "a\n\nb", "a\n\nb"},
		{"collapses newline runs", "a\n\n\n\nb", "a\n\nb"},
		{"windows line endings", "a\r\nb", "a\nb"},
		{"trims", "  a  ", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
