// Package app assembles the configured providers, the vector store and the
// two pipelines into a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"paperquery/internal/adapter/gemini"
	"paperquery/internal/adapter/openai"
	"paperquery/internal/answer"
	"paperquery/internal/config"
	"paperquery/internal/document"
	"paperquery/internal/embedding"
	"paperquery/internal/pipeline"
	"paperquery/internal/retry"
	"paperquery/internal/text"
	"paperquery/internal/token"
)

type App struct {
	Ingestor *pipeline.Ingestor
	Query    *pipeline.Query
	Imager   document.PageImager

	cfg *config.Config
}

func New(ctx context.Context, cfg *config.Config, store pipeline.VectorStore) (*App, error) {
	budget, err := token.NewBudget()
	if err != nil {
		return nil, fmt.Errorf("token budget error: %w", err)
	}

	embedder, err := NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("embedder error: %w", err)
	}
	generator, err := NewGenerator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("generator error: %w", err)
	}

	gateway := embedding.NewGateway(embedder, budget, cfg.MaxTokens)
	composer := answer.NewComposer(generator)
	chunker := text.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	retryCfg := retry.Config{
		MaxRetries: cfg.RetryCount,
		Delay:      time.Duration(cfg.RetryDelay) * time.Second,
	}

	audit, err := pipeline.NewFileQueryLogger(cfg.QueryLogPath)
	if err != nil {
		slog.Warn("failed to create query logger, falling back to stdout", "error", err)
		audit = pipeline.NewQueryLogger(os.Stdout)
	}

	return &App{
		Ingestor: pipeline.NewIngestor(document.NewPDFExtractor(), chunker, gateway, store, cfg.Workers, retryCfg),
		Query:    pipeline.NewQuery(gateway, store, composer, audit, cfg.TopK, cfg.ResultsPath, retryCfg),
		Imager:   document.NewImageReader(),
		cfg:      cfg,
	}, nil
}

// NewEmbedder picks the embedding backend for the configured provider.
func NewEmbedder(ctx context.Context, cfg *config.Config) (embedding.Embedder, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	case config.ProviderOpenAI:
		return openai.NewEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
}

// NewGenerator picks the chat backend for the configured provider.
func NewGenerator(ctx context.Context, cfg *config.Config) (answer.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.ChatModel)
	case config.ProviderOpenAI:
		return openai.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
}
