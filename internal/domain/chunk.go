package domain

// KnowledgeChunk is the unit of embedded, indexed text. Chunks are immutable
// once written; updates happen by whole-namespace replacement.
type KnowledgeChunk struct {
	Content    string
	Embedding  []float32
	Source     string
	Domain     string
	ChunkIndex int
	ChunkCount int
}

// ChunkMetadata is the provenance attached to each source reference.
type ChunkMetadata struct {
	Source     string `json:"source"`
	Domain     string `json:"service_type"`
	ChunkIndex int    `json:"chunk_index"`
	ChunkCount int    `json:"total_chunks"`
}

// Metadata returns the provenance metadata for the chunk.
func (c KnowledgeChunk) Metadata() ChunkMetadata {
	return ChunkMetadata{
		Source:     c.Source,
		Domain:     c.Domain,
		ChunkIndex: c.ChunkIndex,
		ChunkCount: c.ChunkCount,
	}
}

// RetrievedMatch is a similarity-query hit: a chunk plus its cosine-derived
// relevance score in [0,1]. Constructed per query, never persisted.
type RetrievedMatch struct {
	Chunk          KnowledgeChunk
	RelevanceScore float64
}

// ConversationTurn is one caller-supplied message in a chat history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SourceRef points an answer back at the knowledge it was grounded in.
// Metadata is omitted for chat responses to keep the payload small.
type SourceRef struct {
	Content        string         `json:"content"`
	Metadata       *ChunkMetadata `json:"metadata,omitempty"`
	RelevanceScore float64        `json:"relevance_score"`
}
