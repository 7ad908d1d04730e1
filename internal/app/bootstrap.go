package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	wstore "paperquery/internal/adapter/weaviate"
	"paperquery/internal/config"
)

// SchemaEnsurer is the slice of the vector store the bootstrap needs.
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// Bootstrap connects to Weaviate and makes sure the chunk class exists,
// retrying while the store comes up.
func Bootstrap(ctx context.Context, cfg *config.Config) (*wstore.Store, error) {
	wCfg := weaviate.Config{Host: cfg.WeaviateHost, Scheme: cfg.WeaviateScheme}
	wClient, err := weaviate.NewClient(wCfg)
	if err != nil {
		return nil, fmt.Errorf("weaviate client error: %w", err)
	}
	store := wstore.NewStore(wClient, cfg.Collection)

	delay := time.Duration(cfg.BootstrapRetryDelaySeconds) * time.Second
	if err := EnsureSchemaWithRetry(ctx, store, cfg.BootstrapRetryAttempts, delay); err != nil {
		return nil, fmt.Errorf("weaviate schema error: %w", err)
	}

	return store, nil
}

// EnsureSchemaWithRetry delegates schema check to the store with retry logic.
func EnsureSchemaWithRetry(ctx context.Context, store SchemaEnsurer, attempts int, delay time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = store.EnsureSchema(ctx); err == nil {
			return nil
		}
		if i < attempts-1 {
			slog.Warn("failed to ensure weaviate schema, retrying...", "attempt", i+1, "error", err)
			time.Sleep(delay)
		}
	}
	return err
}
