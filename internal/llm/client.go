package llm

import (
	"context"
)

// LLMClient generates prose report sections from templated prompts.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedderClient produces sentence embeddings for the deduplicator's
// similarity pass. Providers without embedding support return an error and
// callers degrade to lexical similarity.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
