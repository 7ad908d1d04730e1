// Package pipeline wires the document, embedding, storage and answer stages
// into the two top-level flows: ingesting a PDF and answering a question.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"paperquery/internal/document"
	"paperquery/internal/embedding"
	"paperquery/internal/result"
	"paperquery/internal/retry"
	"paperquery/internal/text"
)

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	ChunksTotal    int
	ChunksEmbedded int
	ChunksFailed   int
	TokensUsed     int
}

type Ingestor struct {
	extractor document.TextExtractor
	chunker   *text.Chunker
	gateway   EmbeddingGateway
	store     VectorStore
	workers   int
	retryCfg  retry.Config
}

func NewIngestor(extractor document.TextExtractor, chunker *text.Chunker, gateway EmbeddingGateway, store VectorStore, workers int, retryCfg retry.Config) *Ingestor {
	if workers < 1 {
		workers = 1
	}
	return &Ingestor{
		extractor: extractor,
		chunker:   chunker,
		gateway:   gateway,
		store:     store,
		workers:   workers,
		retryCfg:  retryCfg,
	}
}

type embedOutcome struct {
	record StoredRecord
	tokens int
	ok     bool
}

// Run extracts, chunks, embeds and persists a document. Individual chunks
// that keep failing to embed are dropped with a log line; the run only
// fails outright when extraction, chunking or the final store write fails.
func (p *Ingestor) Run(ctx context.Context, path string) result.Result[IngestStats] {
	extracted := p.extractor.ExtractPages(ctx, path)
	if !extracted.Success {
		slog.ErrorContext(ctx, "failed to extract document", "path", path, "error", extracted.Err)
		return result.FailAs[[]text.Page, IngestStats](extracted)
	}

	pages := make([]text.Page, 0, len(extracted.Data))
	for _, page := range extracted.Data {
		cleaned := p.chunker.Clean(page.Text)
		if !cleaned.Success {
			return result.FailAs[string, IngestStats](cleaned)
		}
		pages = append(pages, text.Page{Number: page.Number, Text: cleaned.Data})
	}

	chunked := p.chunker.Split(path, pages)
	if !chunked.Success {
		slog.ErrorContext(ctx, "chunking produced nothing", "path", path, "error", chunked.Err)
		return result.FailAs[[]text.Chunk, IngestStats](chunked)
	}
	chunks := chunked.Data
	slog.InfoContext(ctx, "document chunked", "path", path, "chunks", len(chunks))

	records, tokens, failed := p.embedAll(ctx, chunks)
	if len(records) == 0 {
		return result.Fail[IngestStats](
			fmt.Errorf("%w: every chunk failed to embed", result.ErrUpstreamEmbedding),
			"nothing to persist")
	}

	if _, err := retry.Do(ctx, "vector-store-add", p.retryCfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.store.Add(ctx, records)
	}); err != nil {
		slog.ErrorContext(ctx, "failed to persist embedded chunks", "count", len(records), "error", err)
		return result.Fail[IngestStats](
			fmt.Errorf("%w: %v", result.ErrStoreWrite, err),
			"failed to persist embedded chunks")
	}

	stats := IngestStats{
		ChunksTotal:    len(chunks),
		ChunksEmbedded: len(records),
		ChunksFailed:   failed,
		TokensUsed:     tokens,
	}
	slog.InfoContext(ctx, "ingestion complete",
		"chunks_embedded", stats.ChunksEmbedded,
		"chunks_failed", stats.ChunksFailed,
		"total_tokens", stats.TokensUsed)
	return result.Ok(stats, fmt.Sprintf("ingested %d chunks", stats.ChunksEmbedded))
}

// embedAll fans chunks out to a fixed pool of workers. Order of the
// returned records is not significant; the store keys each record by its
// chunk id.
func (p *Ingestor) embedAll(ctx context.Context, chunks []text.Chunk) ([]StoredRecord, int, int) {
	jobs := make(chan text.Chunk)
	outcomes := make(chan embedOutcome)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				outcomes <- p.embedChunk(ctx, chunk)
			}
		}()
	}

	go func() {
		for _, chunk := range chunks {
			jobs <- chunk
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var records []StoredRecord
	tokens, failed := 0, 0
	for outcome := range outcomes {
		if !outcome.ok {
			failed++
			continue
		}
		records = append(records, outcome.record)
		tokens += outcome.tokens
	}
	return records, tokens, failed
}

func (p *Ingestor) embedChunk(ctx context.Context, chunk text.Chunk) (outcome embedOutcome) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic while embedding chunk", "chunk_id", chunk.ID, "panic", r)
			outcome = embedOutcome{}
		}
	}()

	emb, err := retry.Do(ctx, "embed "+chunk.ID, p.retryCfg, func(ctx context.Context) (embedding.Embedding, error) {
		r := p.gateway.EmbedText(ctx, chunk.Content)
		if !r.Success {
			return embedding.Embedding{}, r.Err
		}
		return r.Data, nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "chunk dropped", "chunk_id", chunk.ID, "error", err)
		return embedOutcome{}
	}

	slog.DebugContext(ctx, "chunk embedded", "chunk_id", chunk.ID, "tokens", emb.TokensUsed)
	return embedOutcome{
		record: StoredRecord{
			ID:          chunk.ID,
			Content:     chunk.Content,
			PageNumber:  chunk.PageNumber,
			ChunkNumber: chunk.ChunkNumber,
			Source:      chunk.Source,
			Vector:      emb.Vector,
		},
		tokens: emb.TokensUsed,
		ok:     true,
	}
}
