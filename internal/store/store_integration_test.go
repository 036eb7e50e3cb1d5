//go:build integration

package store

import (
	"context"
	"hash/fnv"
	"testing"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/dishaajyoti/vedicai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder is a deterministic stand-in for the OpenAI embedding API.
// Identical texts map to identical unit vectors; distinct texts map to
// (almost surely) orthogonal ones, so relevance ordering is predictable.
type hashEmbedder struct {
	dimensions int
}

func (e *hashEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New32a()
	h.Write([]byte(text))
	vec := make([]float32, e.dimensions)
	vec[int(h.Sum32())%e.dimensions] = 1
	return vec, nil
}

func setupStore(t *testing.T) (*KnowledgeStore, func()) {
	t.Helper()
	ctx := context.Background()

	pc := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")

	s := NewKnowledgeStore(pool, &hashEmbedder{dimensions: 1536})
	cleanup := func() {
		pool.Close()
		_ = pc.Terminate(ctx)
	}
	return s, cleanup
}

func testChunks(domainID string, contents ...string) []domain.KnowledgeChunk {
	chunks := make([]domain.KnowledgeChunk, 0, len(contents))
	for i, c := range contents {
		chunks = append(chunks, domain.KnowledgeChunk{
			Content:    c,
			Source:     "test.txt",
			Domain:     domainID,
			ChunkIndex: i,
			ChunkCount: len(contents),
		})
	}
	return chunks
}

func TestKnowledgeStore_AddAndSearch(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	chunks := testChunks("jyotisha",
		"Saturn rules discipline and karma.",
		"Jupiter signifies wisdom and fortune.",
		"Mars governs courage and conflict.",
	)
	require.NoError(t, s.Add(ctx, chunks, "jyotisha"))

	matches, err := s.Search(ctx, "Jupiter signifies wisdom and fortune.", "jyotisha", 5)

	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Jupiter signifies wisdom and fortune.", matches[0].Chunk.Content)
	assert.InDelta(t, 1.0, matches[0].RelevanceScore, 0.01)
	assert.Equal(t, "jyotisha", matches[0].Chunk.Domain)
	assert.Equal(t, "test.txt", matches[0].Chunk.Source)

	for _, m := range matches {
		assert.GreaterOrEqual(t, m.RelevanceScore, 0.0)
		assert.LessOrEqual(t, m.RelevanceScore, 1.0)
	}
}

func TestKnowledgeStore_Search_NamespaceIsolation(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, testChunks("jyotisha", "Saturn rules discipline."), "jyotisha"))
	require.NoError(t, s.Add(ctx, testChunks("vastu", "The northeast belongs to water."), "vastu"))

	matches, err := s.Search(ctx, "Saturn rules discipline.", "vastu", 5)

	require.NoError(t, err)
	for _, m := range matches {
		assert.Equal(t, "vastu", m.Chunk.Domain)
	}
}

func TestKnowledgeStore_Search_UnknownNamespaceEmpty(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	matches, err := s.Search(context.Background(), "anything", "no-such-namespace", 5)

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestKnowledgeStore_Search_RespectsLimit(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	chunks := testChunks("numerology",
		"one", "two", "three", "four", "five", "six", "seven",
	)
	require.NoError(t, s.Add(ctx, chunks, "numerology"))

	matches, err := s.Search(ctx, "one", "numerology", 5)

	require.NoError(t, err)
	assert.Len(t, matches, 5)
}

func TestKnowledgeStore_DeleteNamespace(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, testChunks("palmistry", "The heart line."), "palmistry"))
	require.NoError(t, s.DeleteNamespace(ctx, "palmistry"))

	matches, err := s.Search(ctx, "The heart line.", "palmistry", 5)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Deleting again is a no-op.
	require.NoError(t, s.DeleteNamespace(ctx, "palmistry"))
}

func TestKnowledgeStore_ReingestReplacesNamespace(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, testChunks("vastu", "a", "b", "c"), "vastu"))
	require.NoError(t, s.DeleteNamespace(ctx, "vastu"))
	require.NoError(t, s.Add(ctx, testChunks("vastu", "d", "e"), "vastu"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats["vastu"])
}

func TestKnowledgeStore_Add_EmptyNamespace(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	err := s.Add(context.Background(), testChunks("x", "content"), "")

	require.Error(t, err)
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeValidation, derr.Code)
}
