package answer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paperquery/internal/answer"
	"paperquery/internal/result"
)

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func TestBuildPrompt_NumbersChunks(t *testing.T) {
	system, user := answer.BuildPrompt([]string{"alpha facts", "beta facts"}, "what about alpha?")

	assert.Contains(t, system, answer.RefusalSentence)
	assert.Contains(t, user, "[Chunk 1]\nalpha facts")
	assert.Contains(t, user, "[Chunk 2]\nbeta facts")
	assert.Contains(t, user, "User Question:\nwhat about alpha?")
}

func TestCompose_Success(t *testing.T) {
	g := new(MockGenerator)
	g.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(user string) bool {
		return assert.Contains(t, user, "[Chunk 1]")
	})).Return("  the answer  \n", nil)

	c := answer.NewComposer(g)
	r := c.Compose(context.Background(), []string{"context text"}, "question?")

	require.True(t, r.Success)
	assert.Equal(t, "the answer", r.Data)
	g.AssertExpectations(t)
}

func TestCompose_UpstreamFailure(t *testing.T) {
	g := new(MockGenerator)
	g.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	c := answer.NewComposer(g)
	r := c.Compose(context.Background(), []string{"context"}, "question?")

	assert.False(t, r.Success)
	assert.True(t, r.Is(result.ErrUpstreamGeneration))
}

func TestCompose_ParseFailureKeepsKind(t *testing.T) {
	g := new(MockGenerator)
	g.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: empty candidates", result.ErrResponseParse))

	c := answer.NewComposer(g)
	r := c.Compose(context.Background(), []string{"context"}, "question?")

	assert.False(t, r.Success)
	assert.True(t, r.Is(result.ErrResponseParse))
	assert.False(t, r.Is(result.ErrUpstreamGeneration))
}
