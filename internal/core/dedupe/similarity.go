package dedupe

import (
	"context"
	"fmt"
	"strings"

	"github.com/inspectech/ddr/internal/core/common"
	"github.com/inspectech/ddr/internal/llm"
)

// Scorer computes a pairwise similarity matrix over a batch of findings.
// matrix[i][j] is in [0,1].
type Scorer interface {
	Similarity(ctx context.Context, texts []string) ([][]float64, error)
}

// LexicalScorer is the always-available fallback: token-set Jaccard over
// normalized text. Deterministic, no external calls.
type LexicalScorer struct{}

func (LexicalScorer) Similarity(_ context.Context, texts []string) ([][]float64, error) {
	tokens := make([]map[string]struct{}, len(texts))
	for i, t := range texts {
		set := make(map[string]struct{})
		for _, w := range strings.Fields(common.NormalizeText(t, nil)) {
			set[w] = struct{}{}
		}
		tokens[i] = set
	}

	matrix := make([][]float64, len(texts))
	for i := range texts {
		matrix[i] = make([]float64, len(texts))
		matrix[i][i] = 1
		for j := 0; j < i; j++ {
			s := jaccard(tokens[i], tokens[j])
			matrix[i][j] = s
			matrix[j][i] = s
		}
	}
	return matrix, nil
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// EmbeddingScorer embeds each finding once and scores pairs by cosine
// similarity. Any embedding failure aborts the whole batch; the caller treats
// that as "no scorer" and keeps the lexical dedup result.
type EmbeddingScorer struct {
	Embedder llm.EmbedderClient
}

func NewEmbeddingScorer(embedder llm.EmbedderClient) *EmbeddingScorer {
	return &EmbeddingScorer{Embedder: embedder}
}

func (s *EmbeddingScorer) Similarity(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := s.Embedder.Embed(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("failed to embed finding %d: %w", i, err)
		}
		vectors[i] = vec
	}

	matrix := make([][]float64, len(texts))
	for i := range texts {
		matrix[i] = make([]float64, len(texts))
		matrix[i][i] = 1
		for j := 0; j < i; j++ {
			sim := common.CosineSimilarity(vectors[i], vectors[j])
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix, nil
}
