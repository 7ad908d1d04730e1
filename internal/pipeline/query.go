package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"paperquery/internal/embedding"
	"paperquery/internal/result"
	"paperquery/internal/retry"
)

// Answer is the persisted outcome of one answered question.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Query struct {
	gateway     EmbeddingGateway
	store       VectorStore
	composer    AnswerComposer
	audit       *QueryLogger
	topK        int
	resultsPath string
	retryCfg    retry.Config
}

func NewQuery(gateway EmbeddingGateway, store VectorStore, composer AnswerComposer, audit *QueryLogger, topK int, resultsPath string, retryCfg retry.Config) *Query {
	return &Query{
		gateway:     gateway,
		store:       store,
		composer:    composer,
		audit:       audit,
		topK:        topK,
		resultsPath: resultsPath,
		retryCfg:    retryCfg,
	}
}

// Run embeds the question, retrieves the nearest chunks, composes an answer
// and writes it to the results artifact. Each stage short-circuits the rest
// on failure. An empty retrieval is not an error: the composer is never
// consulted and no artifact is written.
func (q *Query) Run(ctx context.Context, question string) result.Result[Answer] {
	start := time.Now()

	embedded := q.gateway.EmbedText(ctx, question)
	if !embedded.Success {
		slog.ErrorContext(ctx, "failed to embed question", "error", embedded.Err)
		return result.FailAs[embedding.Embedding, Answer](embedded)
	}

	hits, err := retry.Do(ctx, "vector-store-query", q.retryCfg, func(ctx context.Context) ([]RetrievedChunk, error) {
		return q.store.Query(ctx, embedded.Data.Vector, q.topK)
	})
	if err != nil {
		slog.ErrorContext(ctx, "vector store query failed", "error", err)
		return result.Fail[Answer](
			fmt.Errorf("%w: %v", result.ErrStoreQuery, err),
			"failed to search the document")
	}

	if len(hits) == 0 {
		slog.InfoContext(ctx, "no relevant chunks found", "question", question)
		q.logQuery(question, 0, false, start)
		return result.Ok(Answer{Question: question}, "no relevant chunks found")
	}

	contents := make([]string, len(hits))
	for i, hit := range hits {
		contents[i] = hit.Content
	}
	slog.InfoContext(ctx, "composing answer", "chunks", len(contents))

	composed := q.composer.Compose(ctx, contents, question)
	if !composed.Success {
		slog.ErrorContext(ctx, "failed to compose answer", "error", composed.Err)
		return result.FailAs[string, Answer](composed)
	}

	answer := Answer{Question: question, Answer: composed.Data}
	if err := q.saveResult(answer); err != nil {
		slog.ErrorContext(ctx, "failed to write results artifact", "path", q.resultsPath, "error", err)
		return result.Fail[Answer](fmt.Errorf("write results artifact: %w", err), "failed to save the answer")
	}

	q.logQuery(question, len(hits), true, start)
	return result.Ok(answer, "answer composed")
}

// saveResult overwrites the artifact with the latest answer, pretty-printed.
func (q *Query) saveResult(answer Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(q.resultsPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return os.WriteFile(q.resultsPath, data, 0o644)
}

func (q *Query) logQuery(question string, numChunks int, answered bool, start time.Time) {
	if q.audit == nil {
		return
	}
	q.audit.Log(QueryLogEntry{
		Question:  question,
		NumChunks: numChunks,
		Answered:  answered,
		Duration:  time.Since(start),
	})
}
