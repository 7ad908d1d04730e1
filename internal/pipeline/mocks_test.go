package pipeline_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperquery/internal/embedding"
	"paperquery/internal/pipeline"
	"paperquery/internal/result"
	"paperquery/internal/text"
)

type MockGateway struct{ mock.Mock }

func (m *MockGateway) EmbedText(ctx context.Context, content string) result.Result[embedding.Embedding] {
	args := m.Called(ctx, content)
	return args.Get(0).(result.Result[embedding.Embedding])
}

type MockStore struct{ mock.Mock }

func (m *MockStore) Add(ctx context.Context, records []pipeline.StoredRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockStore) Query(ctx context.Context, vector []float32, topK int) ([]pipeline.RetrievedChunk, error) {
	args := m.Called(ctx, vector, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pipeline.RetrievedChunk), args.Error(1)
}

type MockComposer struct{ mock.Mock }

func (m *MockComposer) Compose(ctx context.Context, chunks []string, question string) result.Result[string] {
	args := m.Called(ctx, chunks, question)
	return args.Get(0).(result.Result[string])
}

type MockExtractor struct{ mock.Mock }

func (m *MockExtractor) ExtractPages(ctx context.Context, path string) result.Result[[]text.Page] {
	args := m.Called(ctx, path)
	return args.Get(0).(result.Result[[]text.Page])
}
