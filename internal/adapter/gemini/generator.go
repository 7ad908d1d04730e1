package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"paperquery/internal/result"
)

const DefaultChatModel = "gemini-2.5-flash"

type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultChatModel
	}
	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Generate(ctx context.Context, system, user string) (string, error) {
	gm := g.client.GenerativeModel(g.model)
	gm.SetTemperature(0.7)
	gm.SetMaxOutputTokens(4000)
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := gm.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: response has no candidates", result.ErrResponseParse)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: candidate contains no text parts", result.ErrResponseParse)
	}

	return b.String(), nil
}
