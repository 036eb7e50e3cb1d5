package store

import (
	"context"
	"sync"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const (
	// DefaultSearchK is the number of matches returned when k is not given
	DefaultSearchK = 5
	// defaultEmbedWorkers bounds concurrent embedding calls during Add
	defaultEmbedWorkers = 4
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeStore owns the namespaced vector index. Index provisioning (table,
// vector extension, cosine index) happens through idempotent migrations at
// process startup, so construction is cheap and safe from concurrent
// instances.
type KnowledgeStore struct {
	pool         *pgxpool.Pool
	embedding    EmbeddingClient
	embedWorkers int
}

// NewKnowledgeStore creates a KnowledgeStore over the given pool and
// embedding client.
func NewKnowledgeStore(pool *pgxpool.Pool, embedding EmbeddingClient) *KnowledgeStore {
	return &KnowledgeStore{
		pool:         pool,
		embedding:    embedding,
		embedWorkers: defaultEmbedWorkers,
	}
}

// Add embeds and writes all chunks under the namespace. Writes are not
// atomic: a failure can leave earlier chunks in the index, so callers ingest
// by whole-namespace replacement rather than relying on rollback.
func (s *KnowledgeStore) Add(ctx context.Context, chunks []domain.KnowledgeChunk, namespace string) error {
	if namespace == "" {
		return domain.ErrEmptyNamespace
	}
	if len(chunks) == 0 {
		return nil
	}

	embeddings, err := s.embedAll(ctx, chunks)
	if err != nil {
		return domain.NewStoreWriteError("failed to embed chunks", err)
	}

	for i, c := range chunks {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO knowledge_chunks
				(namespace, source, chunk_index, chunk_count, content, embedding)
			 VALUES
				($1, $2, $3, $4, $5, $6)`,
			namespace,
			c.Source,
			c.ChunkIndex,
			c.ChunkCount,
			c.Content,
			pgvector.NewVector(embeddings[i]),
		)
		if err != nil {
			return domain.NewStoreWriteError("failed to write chunk", err)
		}
	}

	return nil
}

// embedAll generates embeddings for all chunks with a bounded number of
// concurrent calls, preserving chunk order.
func (s *KnowledgeStore) embedAll(ctx context.Context, chunks []domain.KnowledgeChunk) ([][]float32, error) {
	workers := s.embedWorkers
	if workers <= 0 {
		workers = 1
	}

	embeddings := make([][]float32, len(chunks))
	sem := make(chan struct{}, workers)
	errCh := make(chan error, len(chunks))
	var wg sync.WaitGroup

	for i, c := range chunks {
		wg.Add(1)
		go func(i int, content string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			emb, err := s.embedding.GenerateEmbedding(ctx, content)
			if err != nil {
				errCh <- err
				return
			}
			embeddings[i] = emb
		}(i, c.Content)
	}

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	return embeddings, nil
}

// Search embeds the query and returns the top k matches in the namespace,
// ordered by descending relevance score. An empty or unknown namespace yields
// an empty result, not an error.
func (s *KnowledgeStore) Search(ctx context.Context, query, namespace string, k int) ([]domain.RetrievedMatch, error) {
	if namespace == "" {
		return nil, domain.ErrEmptyNamespace
	}
	if k <= 0 {
		k = DefaultSearchK
	}

	embedding, err := s.embedding.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, domain.NewStoreReadError("failed to embed query", err)
	}

	vec := pgvector.NewVector(embedding)
	rows, err := s.pool.Query(ctx,
		`SELECT content, source, namespace, chunk_index, chunk_count,
		        1 - (embedding <=> $1) AS score
		 FROM knowledge_chunks
		 WHERE namespace = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		vec, namespace, k,
	)
	if err != nil {
		return nil, domain.NewStoreReadError("failed to query index", err)
	}
	defer rows.Close()

	matches := make([]domain.RetrievedMatch, 0, k)
	for rows.Next() {
		var m domain.RetrievedMatch
		var score float64
		if err := rows.Scan(
			&m.Chunk.Content,
			&m.Chunk.Source,
			&m.Chunk.Domain,
			&m.Chunk.ChunkIndex,
			&m.Chunk.ChunkCount,
			&score,
		); err != nil {
			return nil, domain.NewStoreReadError("failed to scan match", err)
		}
		m.RelevanceScore = clampScore(score)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreReadError("failed to read matches", err)
	}

	return matches, nil
}

// DeleteNamespace removes all chunks in the namespace. Deleting a
// non-existent namespace is a no-op.
func (s *KnowledgeStore) DeleteNamespace(ctx context.Context, namespace string) error {
	if namespace == "" {
		return domain.ErrEmptyNamespace
	}

	_, err := s.pool.Exec(ctx, `DELETE FROM knowledge_chunks WHERE namespace = $1`, namespace)
	if err != nil {
		return domain.NewStoreWriteError("failed to delete namespace", err)
	}
	return nil
}

// Stats returns the number of indexed chunks per namespace.
func (s *KnowledgeStore) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT namespace, COUNT(*) FROM knowledge_chunks GROUP BY namespace`)
	if err != nil {
		return nil, domain.NewStoreReadError("failed to query stats", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var namespace string
		var count int
		if err := rows.Scan(&namespace, &count); err != nil {
			return nil, domain.NewStoreReadError("failed to scan stats", err)
		}
		stats[namespace] = count
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreReadError("failed to read stats", err)
	}

	return stats, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
