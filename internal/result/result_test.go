package result_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"paperquery/internal/result"
)

func TestOk(t *testing.T) {
	r := result.Ok(42, "counted")
	assert.True(t, r.Success)
	assert.Equal(t, 42, r.Data)
	assert.Equal(t, "counted", r.Message)
	assert.NoError(t, r.Err)
}

func TestFail(t *testing.T) {
	err := fmt.Errorf("%w: 4000 tokens (max 3000)", result.ErrTokenLimitExceeded)
	r := result.Fail[int](err, "admission rejected")

	assert.False(t, r.Success)
	assert.Zero(t, r.Data)
	assert.True(t, r.Is(result.ErrTokenLimitExceeded))
	assert.False(t, r.Is(result.ErrInvalidInput))
}

func TestFailAs_PreservesErrorAndMessage(t *testing.T) {
	inner := result.Fail[int](result.ErrStoreQuery, "lookup failed")
	outer := result.FailAs[int, string](inner)

	assert.False(t, outer.Success)
	assert.True(t, outer.Is(result.ErrStoreQuery))
	assert.Equal(t, "lookup failed", outer.Message)
}

func TestIs_FalseForSuccess(t *testing.T) {
	r := result.Ok("answer", "done")
	assert.False(t, r.Is(result.ErrUpstreamGeneration))
}
