package ingest

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target chunk length in characters
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the target overlap between consecutive chunks
	DefaultChunkOverlap = 200
)

// defaultSeparators is the cascading separator preference: paragraph break,
// line break, sentence end, space, then raw characters.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter divides text into overlapping chunks, preferring natural
// boundaries where possible while honoring the size and overlap targets.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	separators   []string
}

// NewSplitter creates a Splitter with the given size and overlap targets. A
// non-positive size falls back to the default; an overlap that is negative or
// would reach the chunk size is clamped to a fifth of it.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split divides text into chunks of at most ChunkSize characters.
func (s *Splitter) Split(text string) []string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil
	}
	return s.split(clean, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	sep := ""
	var remaining []string
	for i, candidate := range separators {
		if candidate == "" {
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			remaining = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return s.sliceHard(text)
	}

	splits := strings.Split(text, sep)

	var final []string
	var good []string
	for _, piece := range splits {
		if utf8.RuneCountInString(piece) < s.ChunkSize {
			good = append(good, piece)
			continue
		}
		// Oversized piece: flush accumulated pieces, then recurse with the
		// finer separators.
		if len(good) > 0 {
			final = append(final, s.merge(good, sep)...)
			good = nil
		}
		final = append(final, s.split(piece, remaining)...)
	}
	if len(good) > 0 {
		final = append(final, s.merge(good, sep)...)
	}

	return final
}

// merge greedily packs pieces into chunks up to ChunkSize, carrying the
// trailing pieces within the overlap budget into the next chunk.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := utf8.RuneCountInString(sep)

	var chunks []string
	var current []string
	total := 0

	joinLen := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)

		if len(current) > 0 && total+joinLen(len(current))+pieceLen > s.ChunkSize {
			if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			// Drop leading pieces until the carried tail fits the overlap
			// budget and leaves room for the incoming piece.
			for total > s.ChunkOverlap || (len(current) > 0 && total+joinLen(len(current))+pieceLen > s.ChunkSize) {
				total -= utf8.RuneCountInString(current[0]) + joinLen(len(current)-1)
				current = current[1:]
			}
		}

		if len(current) > 0 {
			total += sepLen
		}
		current = append(current, piece)
		total += pieceLen
	}

	if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
		chunks = append(chunks, chunk)
	}

	return chunks
}

// sliceHard cuts text into fixed-size windows stepping by size-overlap, used
// when no natural separator remains.
func (s *Splitter) sliceHard(text string) []string {
	runes := []rune(text)
	if len(runes) <= s.ChunkSize {
		return []string{text}
	}

	step := s.ChunkSize - s.ChunkOverlap
	if step <= 0 {
		step = s.ChunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
