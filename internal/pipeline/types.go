package pipeline

import (
	"context"

	"paperquery/internal/embedding"
	"paperquery/internal/result"
)

// StoredRecord is what gets persisted for each successfully embedded chunk.
type StoredRecord struct {
	ID          string
	Content     string
	PageNumber  int
	ChunkNumber int
	Source      string
	Vector      []float32
}

// RetrievedChunk is one ranked nearest-neighbor hit.
type RetrievedChunk struct {
	Content     string
	Source      string
	PageNumber  int
	ChunkNumber int
	Distance    float32
}

type EmbeddingGateway interface {
	EmbedText(ctx context.Context, text string) result.Result[embedding.Embedding]
}

type VectorStore interface {
	Add(ctx context.Context, records []StoredRecord) error
	Query(ctx context.Context, vector []float32, topK int) ([]RetrievedChunk, error)
}

type AnswerComposer interface {
	Compose(ctx context.Context, chunks []string, question string) result.Result[string]
}
