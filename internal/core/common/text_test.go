package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	fillers := []string{"observed", "noticed", "mild"}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  Dampness On Wall  ", "dampness on wall"},
		{"strips fillers as whole words", "Mild dampness observed", "dampness"},
		{"keeps filler substrings inside words", "unobserved corrosion", "unobserved corrosion"},
		{"strips punctuation", "tile-joint gap, near skirting.", "tilejoint gap near skirting"},
		{"collapses whitespace", "dampness    near   wall", "dampness near wall"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input, fillers))
		})
	}
}

func TestContainsAllKeywords(t *testing.T) {
	assert.True(t, ContainsAllKeywords("Severe skirting dampness near door", "skirting dampness"))
	assert.True(t, ContainsAllKeywords("Tile joint gap observed", "tile joint gap"))
	assert.False(t, ContainsAllKeywords("dampness near skirting", "skirting leakage"))
	// Conjunctive substring match, not exact phrase.
	assert.True(t, ContainsAllKeywords("dampness observed on skirting board", "skirting dampness"))
	assert.False(t, ContainsAllKeywords("anything", ""))
}

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet()

	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))

	assert.Equal(t, []string{"b", "a"}, s.Values())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
