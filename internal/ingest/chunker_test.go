package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split_EmptyInput(t *testing.T) {
	s := NewSplitter(DefaultChunkSize, DefaultChunkOverlap)

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\n  "))
}

func TestSplitter_Split_ShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(DefaultChunkSize, DefaultChunkOverlap)

	chunks := s.Split("The nine planets influence human affairs.")

	require.Len(t, chunks, 1)
	assert.Equal(t, "The nine planets influence human affairs.", chunks[0])
}

func TestSplitter_Split_RespectsChunkSize(t *testing.T) {
	s := NewSplitter(100, 20)

	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("Saturn transits bring discipline and delay. ")
	}
	chunks := s.Split(b.String())

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 100, "chunk %d too long", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplitter_Split_PrefersParagraphBoundaries(t *testing.T) {
	s := NewSplitter(100, 20)

	text := "First paragraph about planetary periods.\n\nSecond paragraph about house placements.\n\nThird paragraph about nakshatras."
	chunks := s.Split(text)

	require.GreaterOrEqual(t, len(chunks), 2)
	for _, chunk := range chunks {
		assert.NotContains(t, chunk, "\n\n\n")
	}
}

func TestSplitter_Split_HardSliceOverlaps(t *testing.T) {
	s := NewSplitter(100, 20)

	// No separators at all, forces fixed-window slicing.
	text := strings.Repeat("x", 350)
	chunks := s.Split(text)

	require.GreaterOrEqual(t, len(chunks), 2)
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-20:]
		assert.True(t, strings.HasPrefix(chunks[i], prevTail),
			"chunk %d does not carry the 20-char overlap", i)
	}
}

func TestSplitter_Split_HardSliceCoversAllText(t *testing.T) {
	s := NewSplitter(100, 20)

	text := strings.Repeat("y", 275)
	chunks := s.Split(text)

	// Windows step by size-overlap, so the last window reaches the end.
	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	assert.GreaterOrEqual(t, total, len(text))
}

func TestSplitter_Split_OversizedParagraphRecursesToSentences(t *testing.T) {
	s := NewSplitter(80, 10)

	// One paragraph far larger than the chunk size, split on sentence ends.
	text := strings.Repeat("Mars rules courage. ", 30)
	chunks := s.Split(text)

	require.GreaterOrEqual(t, len(chunks), 2)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 80)
		assert.Contains(t, chunk, "Mars rules courage")
	}
}

func TestNewSplitter_DefaultsOnBadInput(t *testing.T) {
	s := NewSplitter(0, -1)

	assert.Equal(t, DefaultChunkSize, s.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, s.ChunkOverlap)
}

func TestNewSplitter_ClampsOverlapBelowChunkSize(t *testing.T) {
	// An overlap at or above the chunk size would make windows never advance;
	// it is clamped to a fifth of the size, mirroring the default ratio.
	s := NewSplitter(100, 500)

	assert.Equal(t, 100, s.ChunkSize)
	assert.Equal(t, 20, s.ChunkOverlap)
	assert.Less(t, s.ChunkOverlap, s.ChunkSize)

	s = NewSplitter(100, 100)
	assert.Equal(t, 20, s.ChunkOverlap)
}
