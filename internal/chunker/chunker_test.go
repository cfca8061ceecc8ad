package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, s.chunkSize)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, s.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		s := New(WithChunkSize(500))
		if s.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", s.chunkSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		s := New(WithChunkSize(100), WithOverlap(150))
		if s.overlap >= s.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		s := New(WithChunkSize(0), WithOverlap(-1))
		if s.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", s.chunkSize)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", s.overlap)
		}
	})
}

func TestSplit_Empty(t *testing.T) {
	s := New()
	if chunks := s.Split(""); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(chunks))
	}
}

func TestSplit_SmallText(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(20))
	text := "This is a small piece of content."

	chunks := s.Split(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small text, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected chunk to equal input, got %q", chunks[0])
	}
}

func TestSplit_SeparatorFreeText(t *testing.T) {
	// 2500 characters with no separators at all forces character-level
	// splitting: expect exactly three windows of 1000/1000/900 with a
	// 200-character overlap.
	s := New(WithChunkSize(1000), WithOverlap(200))
	text := strings.Repeat("a", 2500)

	chunks := s.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 1000 {
			t.Errorf("chunk %d exceeds target size: %d", i, len(c))
		}
	}
	if len(chunks[0]) != 1000 {
		t.Errorf("expected first chunk of 1000, got %d", len(chunks[0]))
	}

	// Adjacent chunks share the configured overlap.
	tail := chunks[0][len(chunks[0])-200:]
	if !strings.HasPrefix(chunks[1], tail) {
		t.Error("expected second chunk to start with the first chunk's tail")
	}
}

func TestSplit_PrefersParagraphBreaks(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(0))
	text := strings.Repeat("x", 30) + "\n\n" + strings.Repeat("y", 30)

	chunks := s.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[1], "y") {
		t.Errorf("expected split at paragraph break, got %q", chunks[1])
	}
}

func TestSplit_SentenceBoundaries(t *testing.T) {
	s := New(WithChunkSize(8), WithOverlap(0))
	text := "短い文です。次も短い。" // 11 runes, two sentences

	chunks := s.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "。") {
		t.Errorf("expected first chunk to end at a sentence boundary, got %q", chunks[0])
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s := New(WithChunkSize(120), WithOverlap(30))
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)

	first := s.Split(text)
	second := s.Split(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplit_NoContentLost(t *testing.T) {
	s := New(WithChunkSize(80), WithOverlap(0))
	text := "Paragraph one.\n\nParagraph two is a bit longer than the first one.\n\nThird."

	chunks := s.Split(text)
	if strings.Join(chunks, "") != text {
		t.Error("expected concatenated chunks to reproduce the input with zero overlap")
	}
}

func TestSplit_SizesCountRunes(t *testing.T) {
	// Multibyte text must get the same chunk geometry as ASCII: sizes are
	// counted in runes, not bytes.
	t.Run("sub-target document stays whole", func(t *testing.T) {
		s := New(WithChunkSize(1000), WithOverlap(200))
		text := strings.Repeat("これはテスト文です。", 90) // 900 runes, 2700 bytes

		chunks := s.Split(text)
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk for a 900-rune document, got %d", len(chunks))
		}
		if chunks[0] != text {
			t.Error("expected chunk to equal input")
		}
	})

	t.Run("oversized document splits on rune budget", func(t *testing.T) {
		s := New(WithChunkSize(1000), WithOverlap(200))
		text := strings.Repeat("これはテスト文です。", 200) // 2000 runes

		chunks := s.Split(text)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks for a 2000-rune document, got %d", len(chunks))
		}
		for i, c := range chunks {
			if n := utf8.RuneCountInString(c); n > 1000 {
				t.Errorf("chunk %d exceeds target size: %d runes", i, n)
			}
		}
		if n := utf8.RuneCountInString(chunks[0]); n != 1000 {
			t.Errorf("expected first chunk of 1000 runes, got %d", n)
		}

		// Ten-rune sentences pack evenly, so the carried tail is exactly
		// the configured overlap.
		tail := []rune(chunks[0])[800:]
		if !strings.HasPrefix(chunks[1], string(tail)) {
			t.Error("expected second chunk to start with the first chunk's 200-rune tail")
		}
	})
}

func TestSplit_MultibyteSafe(t *testing.T) {
	s := New(WithChunkSize(10), WithOverlap(0), WithSeparators([]string{""}))
	text := strings.Repeat("日", 20) // 3 bytes each, no separators

	for i, c := range s.Split(text) {
		if !strings.HasPrefix(c, "日") {
			t.Fatalf("chunk %d starts mid-rune: %q", i, c)
		}
	}
}
