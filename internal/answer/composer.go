// Package answer turns retrieved chunks plus a question into a grounded
// answer from the chat model.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paperquery/internal/result"
)

// RefusalSentence is what the model is instructed to emit when the supplied
// context cannot answer the question.
const RefusalSentence = "The provided document does not contain enough information to answer this question."

const systemInstruction = `You are an expert AI assistant specialized in analyzing documents.

You will receive:
1) Context chunks extracted from a document.
2) A user question.

Your task:
- Answer the user's question using ONLY the provided context.
- Do NOT invent information.
- If the answer is not found in the context, clearly say:
"` + RefusalSentence + `"
- Provide a clear, professional, well-structured answer.
- If helpful, organize the answer using bullet points or short paragraphs.
- Keep the answer concise but informative.`

// Generator is the remote chat capability. Implementations live under
// internal/adapter.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type Composer struct {
	generator Generator
}

func NewComposer(g Generator) *Composer {
	return &Composer{generator: g}
}

// BuildPrompt numbers each context chunk for traceability and appends the
// question.
func BuildPrompt(chunks []string, question string) (system, user string) {
	var b strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Chunk %d]\n%s", i+1, chunk)
	}

	user = fmt.Sprintf("Context:\n%s\n\nUser Question:\n%s\n\nPlease provide the final answer for the user.",
		b.String(), question)
	return systemInstruction, user
}

// Compose sends the chunks and question to the model and returns the raw
// answer text.
func (c *Composer) Compose(ctx context.Context, chunks []string, question string) result.Result[string] {
	system, user := BuildPrompt(chunks, question)

	text, err := c.generator.Generate(ctx, system, user)
	if err != nil {
		if errors.Is(err, result.ErrResponseParse) {
			return result.Fail[string](err, "failed to parse model output")
		}
		return result.Fail[string](
			fmt.Errorf("%w: %v", result.ErrUpstreamGeneration, err),
			"answer generation failed")
	}

	return result.Ok(strings.TrimSpace(text), "answer generated")
}
