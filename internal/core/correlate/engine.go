package correlate

import (
	"fmt"
	"strings"

	"github.com/inspectech/ddr/internal/config"
	"github.com/inspectech/ddr/internal/core/common"
	"github.com/inspectech/ddr/internal/core/model"
)

// Areas of the same generic room type are treated as potentially linked even
// without a configured adjacency.
var sharedRoomKeywords = []string{"bedroom", "bathroom", "hall", "kitchen"}

// Vocabulary for contradictory-statement detection.
var (
	noIssueIndicators  = []string{"no issue", "no damage", "good condition", "satisfactory"}
	severityIndicators = []string{"severe", "critical", "major", "significant"}
)

// Engine correlates findings across areas against configured pattern triples
// and the adjacency map, proposing root causes with confidence tiers.
type Engine struct {
	Patterns      []config.CorrelationPattern
	AdjacentAreas map[string][]string
}

func NewEngine(cfg config.CorrelationConfig) *Engine {
	return &Engine{
		Patterns:      cfg.Patterns,
		AdjacentAreas: cfg.AdjacentAreas,
	}
}

type patternMatch struct {
	areaLabel string
	negative  string
	positive  string
}

// Correlate runs pattern matching, the adjacency sweep, conflict detection and
// root-cause deduplication over the area set.
func (e *Engine) Correlate(areas []*model.AreaObservation) *model.CorrelationResult {
	var rootCauses []model.RootCause
	crossAreaLinks := make(map[string][]string)

	for _, pattern := range e.Patterns {
		matches := e.findPatternMatches(areas, pattern.Negative, pattern.Positive)
		if len(matches) == 0 {
			continue
		}

		confidence := model.ConfidenceMedium
		if len(matches) >= 3 {
			confidence = model.ConfidenceHigh
		}
		rootCauses = append(rootCauses, buildRootCause(pattern.RootCause, matches, confidence))

		// Same-location matches feed the per-area link strings; the
		// adjacency-labeled matches do not.
		for _, m := range matches {
			if strings.Contains(m.areaLabel, "(adjacent to") {
				continue
			}
			crossAreaLinks[m.areaLabel] = append(
				crossAreaLinks[m.areaLabel],
				fmt.Sprintf("%s: %s + %s", pattern.RootCause, m.negative, m.positive),
			)
		}
	}

	rootCauses = append(rootCauses, e.adjacentAreaCorrelations(areas)...)

	return &model.CorrelationResult{
		RootCauses:     deduplicateRootCauses(rootCauses),
		CrossAreaLinks: crossAreaLinks,
		Conflicts:      detectConflicts(areas),
	}
}

// findPatternMatches collects (area, negative, positive) triples where an area
// has findings matching both sides of a pattern, plus cross-area matches where
// the positive side sits in an adjacent area.
func (e *Engine) findPatternMatches(areas []*model.AreaObservation, negPattern, posPattern string) []patternMatch {
	var matches []patternMatch

	for _, area := range areas {
		var matchingNegatives []string
		for _, nf := range area.NegativeFindings {
			if common.ContainsAllKeywords(nf, negPattern) {
				matchingNegatives = append(matchingNegatives, nf)
			}
		}

		var matchingPositives []string
		for _, pf := range area.PositiveFindings {
			if common.ContainsAllKeywords(pf, posPattern) {
				matchingPositives = append(matchingPositives, pf)
			}
		}

		for _, neg := range matchingNegatives {
			for _, pos := range matchingPositives {
				matches = append(matches, patternMatch{area.AreaName, neg, pos})
			}
		}

		// The positive side may live in an adjacent area instead.
		for _, other := range areas {
			if other.AreaName == area.AreaName {
				continue
			}
			if !e.areAdjacent(area.AreaName, other.AreaName) {
				continue
			}

			var otherPositives []string
			for _, pf := range other.PositiveFindings {
				if common.ContainsAllKeywords(pf, posPattern) {
					otherPositives = append(otherPositives, pf)
				}
			}

			if len(matchingNegatives) == 0 || len(otherPositives) == 0 {
				continue
			}
			label := fmt.Sprintf("%s (adjacent to %s)", area.AreaName, other.AreaName)
			for _, neg := range matchingNegatives {
				for _, pos := range otherPositives {
					matches = append(matches, patternMatch{label, neg, pos})
				}
			}
		}
	}

	return matches
}

// areAdjacent checks the configured adjacency map symmetrically, then falls
// back to shared generic room keywords. Config keys use underscores
// ("common_bathroom") while area names use spaces, so keys are unslugged
// before the substring test.
func (e *Engine) areAdjacent(area1, area2 string) bool {
	a1 := strings.ToLower(area1)
	a2 := strings.ToLower(area2)

	for key, adjacent := range e.AdjacentAreas {
		k := unslug(key)
		if strings.Contains(a1, k) && containsAnySubstring(a2, adjacent) {
			return true
		}
		if strings.Contains(a2, k) && containsAnySubstring(a1, adjacent) {
			return true
		}
	}

	for _, kw := range sharedRoomKeywords {
		if strings.Contains(a1, kw) && strings.Contains(a2, kw) {
			return true
		}
	}

	return false
}

func containsAnySubstring(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, unslug(sub)) {
			return true
		}
	}
	return false
}

func unslug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

// adjacentAreaCorrelations is the independent sweep: for every adjacent pair
// where one side has positive findings and the other has negative findings, a
// generic medium-confidence root cause is proposed regardless of the pattern
// tables.
func (e *Engine) adjacentAreaCorrelations(areas []*model.AreaObservation) []model.RootCause {
	var correlations []model.RootCause

	for i, area := range areas {
		for _, other := range areas[i+1:] {
			if !e.areAdjacent(area.AreaName, other.AreaName) {
				continue
			}

			if len(area.PositiveFindings) > 0 && len(other.NegativeFindings) > 0 {
				correlations = append(correlations, adjacencyCause(area, other))
			} else if len(other.PositiveFindings) > 0 && len(area.NegativeFindings) > 0 {
				correlations = append(correlations, adjacencyCause(other, area))
			}
		}
	}

	return correlations
}

// adjacencyCause builds the generic root cause for a (cause, affected) pair.
func adjacencyCause(cause, affected *model.AreaObservation) model.RootCause {
	evidence := make([]string, 0, len(cause.PositiveFindings)+len(affected.NegativeFindings))
	evidence = append(evidence, cause.PositiveFindings...)
	evidence = append(evidence, affected.NegativeFindings...)

	return model.RootCause{
		CauseDescription: fmt.Sprintf(
			"Issues in %s likely caused by problems identified in adjacent %s",
			affected.AreaName, cause.AreaName,
		),
		AffectedAreas:      []string{cause.AreaName, affected.AreaName},
		SupportingEvidence: evidence,
		Confidence:         model.ConfidenceMedium,
	}
}

func buildRootCause(description string, matches []patternMatch, confidence string) model.RootCause {
	affected := common.NewOrderedSet()
	evidence := common.NewOrderedSet()

	for _, m := range matches {
		affected.Add(m.areaLabel)
		evidence.Add(fmt.Sprintf("%s: %s", m.areaLabel, m.negative))
		evidence.Add(fmt.Sprintf("%s: %s", m.areaLabel, m.positive))
	}

	return model.RootCause{
		CauseDescription:   description,
		AffectedAreas:      affected.Values(),
		SupportingEvidence: evidence.Values(),
		Confidence:         confidence,
	}
}

// detectConflicts flags areas whose findings carry both a no-issue statement
// and a severity statement.
func detectConflicts(areas []*model.AreaObservation) []string {
	var conflicts []string

	for _, area := range areas {
		hasNoIssue := false
		hasSeverity := false
		for _, f := range area.AllFindings() {
			if common.ContainsAny(f, noIssueIndicators) {
				hasNoIssue = true
			}
			if common.ContainsAny(f, severityIndicators) {
				hasSeverity = true
			}
		}

		if hasNoIssue && hasSeverity {
			conflicts = append(conflicts, fmt.Sprintf(
				"Conflicting severity indicators in %s: Both positive and negative condition statements found",
				area.AreaName,
			))
		}
	}

	return conflicts
}

// deduplicateRootCauses merges causes sharing a normalized description,
// unioning affected areas and evidence. First-seen description text is kept.
func deduplicateRootCauses(causes []model.RootCause) []model.RootCause {
	if len(causes) <= 1 {
		return causes
	}

	var unique []model.RootCause
	index := make(map[string]int)

	for _, cause := range causes {
		key := strings.TrimSpace(strings.ToLower(cause.CauseDescription))
		if i, ok := index[key]; ok {
			unique[i].AffectedAreas = unionStrings(unique[i].AffectedAreas, cause.AffectedAreas)
			unique[i].SupportingEvidence = unionStrings(unique[i].SupportingEvidence, cause.SupportingEvidence)
			continue
		}
		index[key] = len(unique)
		unique = append(unique, cause)
	}

	return unique
}

func unionStrings(a, b []string) []string {
	set := common.NewOrderedSet()
	for _, s := range a {
		set.Add(s)
	}
	for _, s := range b {
		set.Add(s)
	}
	return set.Values()
}
