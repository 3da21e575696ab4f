package dedupe

import (
	"context"
	"fmt"
)

type MockEmbedder struct {
	Vectors map[string][]float32
	Err     error
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vec, ok := m.Vectors[text]
	if !ok {
		return nil, fmt.Errorf("no mock vector for %q", text)
	}
	return vec, nil
}
