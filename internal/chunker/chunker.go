// Package chunker splits document text into overlapping windows.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default target number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters between
// adjacent chunks.
const DefaultOverlap = 200

// defaultSeparators is the split priority order: paragraph break, line
// break, sentence-ending punctuation (including the CJK full stops the
// source corpus uses), space, and finally character boundary.
var defaultSeparators = []string{"\n\n", "\n", "。", "．", " ", ""}

// Splitter carves text into chunks at or under a target size, preferring
// the earliest separator in priority order that produces small-enough
// pieces. Splitting is a pure function of (text, config): identical input
// yields an identical partition.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithSeparators replaces the separator priority list. An empty string as
// the final entry enables character-level splitting.
func WithSeparators(seps []string) Option {
	return func(s *Splitter) {
		if len(seps) > 0 {
			s.separators = seps
		}
	}
}

// New creates a Splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultOverlap,
		separators: defaultSeparators,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for new content in every chunk.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split partitions text into an ordered sequence of chunk texts. Adjacent
// chunks share roughly overlap characters. Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	pieces := s.shatter(text, s.separators)
	return s.merge(pieces)
}

// shatter recursively splits text into pieces no larger than the target
// size, trying each separator in priority order. A piece still too large
// after the last non-empty separator is cut at character boundaries.
// All sizes are measured in runes so multibyte text gets the same chunk
// geometry as ASCII.
func (s *Splitter) shatter(text string, seps []string) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return []string{text}
	}

	// Pick the first separator that actually occurs in this text.
	sep := ""
	rest := []string(nil)
	for i, candidate := range seps {
		if candidate == "" {
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return splitRunes(text, s.granularity())
	}

	// SplitAfter keeps the separator attached, so concatenating the
	// pieces reproduces the input exactly.
	var pieces []string
	for _, part := range strings.SplitAfter(text, sep) {
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) > s.chunkSize {
			pieces = append(pieces, s.shatter(part, rest)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// merge greedily packs pieces into chunks up to the target size, carrying
// a tail of at most overlap characters of trailing pieces into the next
// chunk to preserve context across cut boundaries.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var window []string
	var lengths []int
	total := 0

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total > 0 && total+n > s.chunkSize {
			chunks = append(chunks, strings.Join(window, ""))

			// Drop leading pieces until the retained tail fits both the
			// overlap budget and the incoming piece.
			for total > s.overlap || (total > 0 && total+n > s.chunkSize) {
				total -= lengths[0]
				window = window[1:]
				lengths = lengths[1:]
			}
		}
		window = append(window, piece)
		lengths = append(lengths, n)
		total += n
	}

	if total > 0 {
		chunks = append(chunks, strings.Join(window, ""))
	}
	return chunks
}

// granularity is the piece size used for character-level cuts. Pieces no
// larger than the overlap keep the carried tail close to the configured
// overlap; without overlap a whole chunk-sized piece is fine.
func (s *Splitter) granularity() int {
	if s.overlap > 0 {
		return s.overlap
	}
	return s.chunkSize
}

// splitRunes cuts text into pieces of at most max runes.
func splitRunes(text string, max int) []string {
	var pieces []string
	var cur strings.Builder
	count := 0
	for _, r := range text {
		if count == max {
			pieces = append(pieces, cur.String())
			cur.Reset()
			count = 0
		}
		cur.WriteRune(r)
		count++
	}
	if count > 0 {
		pieces = append(pieces, cur.String())
	}
	return pieces
}
