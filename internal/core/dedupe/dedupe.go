package dedupe

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/inspectech/ddr/internal/config"
	"github.com/inspectech/ddr/internal/core/common"
	"github.com/inspectech/ddr/internal/llm"
)

// Filler words stripped before comparing findings. "Mild dampness observed"
// and "dampness" carry the same signal.
var fillerWords = []string{
	"observed", "noticed", "found", "seen", "mild", "slight", "minor",
}

// Deduplicator collapses near-duplicate observation strings with three
// cascading passes: exact (case-insensitive), normalized (filler words and
// punctuation stripped), and similarity-based.
type Deduplicator struct {
	Scorer    Scorer
	Threshold float64
}

// NewDeduplicator selects the scorer at construction time: embedding-based
// when configured and an embedder is available, lexical otherwise. The
// embedder is shared and read-only; failures at call time degrade to the
// lexical passes only.
func NewDeduplicator(cfg config.DeduplicationConfig, embedder llm.EmbedderClient) *Deduplicator {
	threshold := cfg.SimilarityThreshold
	if threshold <= 0 {
		threshold = 0.85
	}

	var scorer Scorer = LexicalScorer{}
	if cfg.UseEmbeddings {
		if embedder != nil {
			scorer = NewEmbeddingScorer(embedder)
		} else {
			log.Printf("Warning: embeddings requested but no embedder available, using lexical similarity only")
		}
	}

	return &Deduplicator{
		Scorer:    scorer,
		Threshold: threshold,
	}
}

// DeduplicateFindings removes duplicates from a finding list, preserving
// first-seen order. Never fails: a similarity-scorer error only skips the
// third pass.
func (d *Deduplicator) DeduplicateFindings(ctx context.Context, findings []string) []string {
	if len(findings) == 0 {
		return nil
	}

	unique := removeExactDuplicates(findings)
	unique = mergeNormalized(unique)

	if d.Scorer != nil && len(unique) > 1 {
		deduped, err := d.deduplicateBySimilarity(ctx, unique)
		if err != nil {
			log.Printf("Warning: similarity-based deduplication failed: %v. Falling back to rule-based result.", err)
			return unique
		}
		unique = deduped
	}

	return unique
}

// removeExactDuplicates drops case-insensitive, whitespace-trimmed repeats.
func removeExactDuplicates(findings []string) []string {
	seen := common.NewOrderedSet()
	var unique []string

	for _, f := range findings {
		if seen.Add(strings.ToLower(strings.TrimSpace(f))) {
			unique = append(unique, f)
		}
	}
	return unique
}

// mergeNormalized collapses findings that share a normalized key; the
// first-seen original text survives.
func mergeNormalized(findings []string) []string {
	if len(findings) <= 1 {
		return findings
	}

	seen := common.NewOrderedSet()
	var unique []string

	for _, f := range findings {
		if seen.Add(common.NormalizeText(f, fillerWords)) {
			unique = append(unique, f)
		}
	}
	return unique
}

// deduplicateBySimilarity discards the shorter member of any pair scoring at
// or above the threshold, processing pairs in index order.
func (d *Deduplicator) deduplicateBySimilarity(ctx context.Context, findings []string) ([]string, error) {
	matrix, err := d.Scorer.Similarity(ctx, findings)
	if err != nil {
		return nil, err
	}

	discarded := make(map[int]bool)
	for i := range findings {
		if discarded[i] {
			continue
		}
		for j := i + 1; j < len(findings); j++ {
			if discarded[j] {
				continue
			}
			if matrix[i][j] < d.Threshold {
				continue
			}
			// Keep the longer, more detailed finding.
			if len(findings[i]) >= len(findings[j]) {
				discarded[j] = true
			} else {
				discarded[i] = true
				break
			}
		}
	}

	var kept []string
	for i, f := range findings {
		if !discarded[i] {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

// CrossAreaDuplicates returns findings whose normalized form recurs in more
// than one area, keyed by the first-seen original text. Areas are visited in
// name order so the representative text is deterministic.
func (d *Deduplicator) CrossAreaDuplicates(areaFindings map[string][]string) map[string][]string {
	areaNames := make([]string, 0, len(areaFindings))
	for name := range areaFindings {
		areaNames = append(areaNames, name)
	}
	sort.Strings(areaNames)

	type entry struct {
		originalText string
		areas        []string
	}
	byKey := make(map[string]*entry)
	var keyOrder []string

	for _, area := range areaNames {
		for _, f := range areaFindings[area] {
			key := common.NormalizeText(f, fillerWords)
			e, ok := byKey[key]
			if !ok {
				e = &entry{originalText: f}
				byKey[key] = e
				keyOrder = append(keyOrder, key)
			}
			e.areas = append(e.areas, area)
		}
	}

	cross := make(map[string][]string)
	for _, key := range keyOrder {
		e := byKey[key]
		if len(uniqueStrings(e.areas)) > 1 {
			cross[e.originalText] = uniqueStrings(e.areas)
		}
	}
	return cross
}

func uniqueStrings(in []string) []string {
	set := common.NewOrderedSet()
	for _, s := range in {
		set.Add(s)
	}
	return set.Values()
}
