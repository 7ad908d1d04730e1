// Package embedding fronts the remote embedding model with token-budget
// admission control: no outbound call is made for input the budget rejects.
package embedding

import (
	"context"
	"fmt"

	"paperquery/internal/result"
	"paperquery/internal/token"
)

// Embedder is the remote embedding capability. Implementations live under
// internal/adapter.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}

// Embedding is the packaged outcome of a single-text call.
type Embedding struct {
	Vector     []float32
	TokensUsed int
	Model      string
}

// BatchEmbedding is the packaged outcome of a batch call. TokensUsed covers
// the whole batch.
type BatchEmbedding struct {
	Vectors    [][]float32
	TokensUsed int
	Model      string
}

type Gateway struct {
	embedder  Embedder
	budget    *token.Budget
	maxTokens int
}

func NewGateway(e Embedder, b *token.Budget, maxTokens int) *Gateway {
	return &Gateway{embedder: e, budget: b, maxTokens: maxTokens}
}

// EmbedText admits the text against the token ceiling and, on admission,
// requests one embedding vector.
func (g *Gateway) EmbedText(ctx context.Context, text string) result.Result[Embedding] {
	admitted := g.budget.Admit(text, g.maxTokens)
	if !admitted.Success {
		return result.FailAs[int, Embedding](admitted)
	}

	vector, err := g.embedder.EmbedText(ctx, text)
	if err != nil {
		return result.Fail[Embedding](
			fmt.Errorf("%w: %v", result.ErrUpstreamEmbedding, err),
			"embedding generation failed")
	}

	return result.Ok(Embedding{
		Vector:     vector,
		TokensUsed: admitted.Data,
		Model:      g.embedder.Model(),
	}, "embedding generated")
}

// EmbedBatch admits the whole batch against the token ceiling, then requests
// one vector per text in a single upstream call.
func (g *Gateway) EmbedBatch(ctx context.Context, texts []string) result.Result[BatchEmbedding] {
	admitted := g.budget.Admit(texts, g.maxTokens)
	if !admitted.Success {
		return result.FailAs[int, BatchEmbedding](admitted)
	}

	vectors, err := g.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return result.Fail[BatchEmbedding](
			fmt.Errorf("%w: %v", result.ErrUpstreamEmbedding, err),
			"embedding generation failed")
	}
	if len(vectors) != len(texts) {
		return result.Fail[BatchEmbedding](
			fmt.Errorf("%w: got %d vectors for %d texts", result.ErrUpstreamEmbedding, len(vectors), len(texts)),
			"embedding count mismatch")
	}

	return result.Ok(BatchEmbedding{
		Vectors:    vectors,
		TokensUsed: admitted.Data,
		Model:      g.embedder.Model(),
	}, "embeddings generated")
}
