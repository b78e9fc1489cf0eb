// Package llm wraps the hosted Gemini API for answer generation and
// text embeddings.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ChatConfig represents the configuration for a chat engine.
type ChatConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

// ChatEngine is an engine that uses a hosted LLM to generate answers.
// The same client serves as the embedder for the vector store.
type ChatEngine struct {
	config ChatConfig
	llm    *googleai.GoogleAI
}

// NewWithConfig creates a new ChatEngine with the given configuration.
func NewWithConfig(ctx context.Context, config ChatConfig) (*ChatEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if config.Model == "" {
		config.Model = "gemini-pro"
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = "embedding-001"
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultModel(config.Model),
		googleai.WithDefaultEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	return &ChatEngine{
		config: config,
		llm:    client,
	}, nil
}

// Generate sends a single prompt to the model and returns its text
// verbatim.
func (ce *ChatEngine) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, ce.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}
	return answer, nil
}

// CreateEmbedding embeds the given texts with the configured embedding
// model.
func (ce *ChatEngine) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings, err := ce.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding error: %w", err)
	}
	return embeddings, nil
}
