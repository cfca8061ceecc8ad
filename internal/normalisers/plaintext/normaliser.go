package plaintext

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// supportedExtensions are the file types this normaliser handles.
var supportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".log":      true,
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t\x{3000}]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// Normaliser reads plain text files into documents ready for chunking.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Supports reports whether the file extension is handled.
func (n *Normaliser) Supports(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Normalise reads the file at path and builds a document with a stable
// content-derived identifier. The provided metadata is attached alongside
// file name and size; callers typically pass customer, industry and
// document-type attributes.
func (n *Normaliser) Normalise(path string, metadata map[string]any) (*domain.Document, error) {
	if !n.Supports(path) {
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrUnsupportedType, filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := CleanText(string(raw))
	if text == "" {
		return nil, fmt.Errorf("%w: %s has no text content", domain.ErrInvalidInput, path)
	}

	meta := make(map[string]any, len(metadata)+2)
	for k, v := range metadata {
		meta[k] = v
	}
	meta["file_name"] = filepath.Base(path)
	meta["file_size"] = info.Size()

	return &domain.Document{
		ID:         domain.NewDocumentID(path, text),
		Path:       path,
		Text:       text,
		Metadata:   meta,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// CleanText normalises whitespace: runs of spaces, tabs and ideographic
// spaces collapse to one space, trailing space is stripped per line, and
// runs of three or more newlines collapse to a paragraph break. Line
// structure is kept so paragraph and line separators remain visible to the
// chunker.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	text = strings.Join(lines, "\n")

	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
