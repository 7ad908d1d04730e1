// Package weaviate persists embedded chunks in a named Weaviate class and
// answers nearest-neighbor queries against it.
package weaviate

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"paperquery/internal/pipeline"
)

type Store struct {
	client *weaviate.Client
	class  string
}

func NewStore(client *weaviate.Client, class string) *Store {
	return &Store{client: client, class: class}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, NewSchemaAdapter(s.client), s.class)
}

// objectID derives a stable Weaviate object id from the chunk key, so
// re-ingesting the same document overwrites rather than duplicates.
func objectID(chunkKey string) strfmt.UUID {
	return strfmt.UUID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkKey)).String())
}

// Add writes all records as a single batch. The call is all-or-nothing at
// this boundary: any per-object error fails the whole call, and retries
// happen at the caller.
func (s *Store) Add(ctx context.Context, records []pipeline.StoredRecord) error {
	objects := make([]*models.Object, 0, len(records))
	for _, r := range records {
		objects = append(objects, &models.Object{
			Class: s.class,
			ID:    objectID(r.ID),
			Properties: map[string]interface{}{
				"content":     r.Content,
				"chunkKey":    r.ID,
				"source":      r.Source,
				"pageNumber":  r.PageNumber,
				"chunkNumber": r.ChunkNumber,
			},
			Vector: models.C11yVector(r.Vector),
		})
	}

	resp, err := s.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		return fmt.Errorf("batch write: %w", err)
	}
	for _, obj := range resp {
		if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
			return fmt.Errorf("batch write rejected object %s: %s", obj.ID, obj.Result.Errors.Error[0].Message)
		}
	}
	return nil
}

// Query returns up to topK chunks nearest to the given vector.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]pipeline.RetrievedChunk, error) {
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "chunkKey"},
		{Name: "source"},
		{Name: "pageNumber"},
		{Name: "chunkNumber"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}

	res, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithNearVector(nearVector).
		WithLimit(topK).
		WithFields(fields...).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("near-vector query: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %v", res.Errors)
	}

	var chunks []pipeline.RetrievedChunk
	data, ok := res.Data["Get"].(map[string]interface{})
	if !ok {
		return chunks, nil
	}
	hits, ok := data[s.class].([]interface{})
	if !ok {
		return chunks, nil
	}

	for _, hit := range hits {
		props, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		chunk := pipeline.RetrievedChunk{}
		if content, ok := props["content"].(string); ok {
			chunk.Content = content
		}
		if source, ok := props["source"].(string); ok {
			chunk.Source = source
		}
		if page, ok := props["pageNumber"].(float64); ok {
			chunk.PageNumber = int(page)
		}
		if num, ok := props["chunkNumber"].(float64); ok {
			chunk.ChunkNumber = int(num)
		}
		if additional, ok := props["_additional"].(map[string]interface{}); ok {
			if distance, ok := additional["distance"].(float64); ok {
				chunk.Distance = float32(distance)
			}
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}
