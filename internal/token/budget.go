// Package token implements the admission check that runs before every
// outbound embedding call. Counting uses the cl100k_base encoding as a
// fixed, model-independent approximation; it is a budget guard, not billing.
package token

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"paperquery/internal/result"
)

type Budget struct {
	enc *tiktoken.Tiktoken
}

func NewBudget() (*Budget, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load cl100k_base encoding: %w", err)
	}
	return &Budget{enc: enc}, nil
}

// Count sums token counts for a string or a slice of strings. Anything else
// is a usage error.
func (b *Budget) Count(input any) result.Result[int] {
	switch v := input.(type) {
	case string:
		return result.Ok(len(b.enc.Encode(v, nil, nil)), "tokens counted")
	case []string:
		total := 0
		for _, s := range v {
			total += len(b.enc.Encode(s, nil, nil))
		}
		return result.Ok(total, "tokens counted")
	default:
		return result.Fail[int](
			fmt.Errorf("%w: input must be a string or a slice of strings, got %T", result.ErrInvalidInput, input),
			"cannot count tokens")
	}
}

// Admit counts the input and rejects it when the count exceeds maxTokens.
// The count is returned either way and never clamped.
func (b *Budget) Admit(input any, maxTokens int) result.Result[int] {
	counted := b.Count(input)
	if !counted.Success {
		return counted
	}

	if counted.Data > maxTokens {
		return result.Fail[int](
			fmt.Errorf("%w: %d tokens (max %d)", result.ErrTokenLimitExceeded, counted.Data, maxTokens),
			"admission rejected")
	}

	return result.Ok(counted.Data, "token validation passed")
}
