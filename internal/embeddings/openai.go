package embeddings

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = openai.SmallEmbedding3

// Embedder turns a chunk of text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder calls the OpenAI embeddings endpoint.
type OpenAIEmbedder struct {
	Client *openai.Client
	Model  openai.EmbeddingModel
}

func NewOpenAIEmbedder(apiKey string) *OpenAIEmbedder {
	return &OpenAIEmbedder{Client: openai.NewClient(apiKey), Model: defaultModel}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	model := e.Model
	if model == "" {
		model = defaultModel
	}
	resp, err := e.Client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: model,
		Input: text,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai returned no embedding")
	}
	return resp.Data[0].Embedding, nil
}
