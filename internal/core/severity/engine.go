package severity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/inspectech/ddr/internal/config"
	"github.com/inspectech/ddr/internal/core/model"
)

// Area-name keywords for the type multipliers.
var (
	structuralKeywords = []string{"wall", "ceiling", "external"}
	wetAreaKeywords    = []string{"bathroom", "kitchen"}
)

// Override rules are checked in this priority order; the first match wins.
var rulePriority = []string{
	"active_leakage_plumbing",
	"external_crack_internal_damp",
	"recurring_dampness",
	"skirting_dampness_multiple",
	"tile_gaps_adjacent_damp",
	"mild_isolated",
}

// Engine computes bounded severity scores per area from weighted keyword
// hits, multiplicative risk factors and named override rules, then aggregates
// to a report-level assessment.
type Engine struct {
	cfg config.SeverityConfig

	// Weight keywords in sorted order so scoring trails are deterministic.
	keywords []string
}

func NewEngine(cfg config.SeverityConfig) *Engine {
	keywords := make([]string, 0, len(cfg.Weights))
	for kw := range cfg.Weights {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	return &Engine{cfg: cfg, keywords: keywords}
}

// AssessSeverity scores every area in place and returns the report-level
// assessment with priority buckets.
func (e *Engine) AssessSeverity(report *model.DDRReport) *model.SeverityAssessment {
	for _, area := range report.Areas {
		score, _ := e.scoreArea(area, report.Areas)
		s := score
		area.SeverityScore = &s
		area.Severity = e.scoreToLevel(score)
	}

	// Only areas with a non-zero score contribute to the aggregate.
	var scores []float64
	for _, area := range report.Areas {
		if area.SeverityScore != nil && *area.SeverityScore > 0 {
			scores = append(scores, *area.SeverityScore)
		}
	}

	var overallScore float64
	var overallLevel, reasoning string
	if len(scores) == 0 {
		overallLevel = model.SeverityLow
		reasoning = "No significant issues identified"
	} else {
		maxScore := scores[0]
		sum := 0.0
		for _, s := range scores {
			if s > maxScore {
				maxScore = s
			}
			sum += s
		}
		// The worst area dominates but the whole property still counts.
		overallScore = maxScore*0.6 + sum/float64(len(scores))*0.4
		overallScore = clamp01(overallScore)
		overallLevel = e.scoreToLevel(overallScore)
		reasoning = e.overallReasoning(report, overallLevel)
	}

	assessment := &model.SeverityAssessment{
		OverallSeverity: overallLevel,
		SeverityScore:   round2(overallScore),
		Reasoning:       reasoning,
	}

	for _, area := range report.Areas {
		switch area.Severity {
		case model.SeverityHigh:
			assessment.HighPriorityAreas = append(assessment.HighPriorityAreas, area.AreaName)
		case model.SeverityMedium:
			assessment.MediumPriorityAreas = append(assessment.MediumPriorityAreas, area.AreaName)
		case model.SeverityLow:
			assessment.LowPriorityAreas = append(assessment.LowPriorityAreas, area.AreaName)
		}
	}

	return assessment
}

// ScoreArea exposes per-area scoring with its reasoning trail.
func (e *Engine) ScoreArea(area *model.AreaObservation, allAreas []*model.AreaObservation) (float64, string) {
	return e.scoreArea(area, allAreas)
}

func (e *Engine) scoreArea(area *model.AreaObservation, allAreas []*model.AreaObservation) (float64, string) {
	if !area.HasIssues() {
		return 0, "No issues found"
	}

	score := 0.0
	var trail []string

	// Additive keyword weights. Hits across findings accumulate past 1 and
	// are clamped at the end.
	for _, finding := range area.NegativeFindings {
		lower := strings.ToLower(finding)
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				score += e.cfg.Weights[kw]
				trail = append(trail, fmt.Sprintf("%s detected", kw))
			}
		}
	}

	issueCount := len(area.NegativeFindings) + len(area.PositiveFindings)
	if issueCount >= 3 {
		score *= 1.2
		trail = append(trail, fmt.Sprintf("multiple issues (%d findings)", issueCount))
	}

	if area.ThermalEvidence != nil && area.ThermalEvidence.HasColdZones {
		score *= 1.15
		trail = append(trail, "thermal evidence of moisture")
	}

	areaLower := strings.ToLower(area.AreaName)
	if containsAny(areaLower, structuralKeywords) {
		score *= e.multiplier("structural", 1.8)
		trail = append(trail, "structural element affected")
	}
	if containsAny(areaLower, wetAreaKeywords) {
		score *= e.multiplier("wet_areas", 1.3)
		trail = append(trail, "wet area concerns")
	}

	if similar := e.similarAreaCount(area, allAreas); similar >= 2 {
		score *= e.multiplier("multiple_areas", 1.5)
		trail = append(trail, fmt.Sprintf("similar issues in %d areas", similar+1))
	}

	if rule, ok := e.matchRule(area, allAreas); ok {
		trail = append(trail, rule.Description)
		if rule.Level == model.SeverityHigh && score < 0.8 {
			score = 0.8
		}
	}

	score = clamp01(score)

	reasoning := "General assessment"
	if len(trail) > 0 {
		reasoning = strings.Join(trail, "; ")
	}
	return round2(score), reasoning
}

// similarAreaCount counts other areas whose negative findings share at least
// one weight-table keyword with this area's.
func (e *Engine) similarAreaCount(area *model.AreaObservation, allAreas []*model.AreaObservation) int {
	mine := e.extractKeywords(area.NegativeFindings)
	if len(mine) == 0 {
		return 0
	}

	count := 0
	for _, other := range allAreas {
		if other.AreaName == area.AreaName {
			continue
		}
		theirs := e.extractKeywords(other.NegativeFindings)
		for kw := range mine {
			if theirs[kw] {
				count++
				break
			}
		}
	}
	return count
}

func (e *Engine) extractKeywords(findings []string) map[string]bool {
	hits := make(map[string]bool)
	for _, f := range findings {
		lower := strings.ToLower(f)
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				hits[kw] = true
			}
		}
	}
	return hits
}

// matchRule checks the named override rules in priority order.
func (e *Engine) matchRule(area *model.AreaObservation, allAreas []*model.AreaObservation) (config.SeverityRule, bool) {
	allText := strings.ToLower(strings.Join(area.AllFindings(), " "))
	areaLower := strings.ToLower(area.AreaName)

	matched := func(name string) bool {
		switch name {
		case "active_leakage_plumbing":
			return strings.Contains(allText, "leakage") && strings.Contains(allText, "plumbing")
		case "external_crack_internal_damp":
			return strings.Contains(allText, "crack") && strings.Contains(allText, "dampness")
		case "recurring_dampness":
			return countAreasWith(allAreas, "dampness") >= 3
		case "skirting_dampness_multiple":
			return strings.Contains(areaLower, "skirting") &&
				strings.Contains(allText, "dampness") &&
				countAreaNamesWith(allAreas, "skirting") >= 2
		case "tile_gaps_adjacent_damp":
			return strings.Contains(allText, "tile") &&
				strings.Contains(allText, "gap") &&
				strings.Contains(allText, "dampness")
		case "mild_isolated":
			return strings.Contains(allText, "mild") && len(area.NegativeFindings) == 1
		}
		return false
	}

	for _, name := range rulePriority {
		rule, ok := e.cfg.Rules[name]
		if !ok {
			continue
		}
		if matched(name) {
			return rule, true
		}
	}
	return config.SeverityRule{}, false
}

func (e *Engine) scoreToLevel(score float64) string {
	switch {
	case score >= e.cfg.HighThreshold:
		return model.SeverityHigh
	case score >= e.cfg.MediumThreshold:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// overallReasoning assembles level counts, root-cause count and a
// level-specific closing recommendation.
func (e *Engine) overallReasoning(report *model.DDRReport, level string) string {
	high, medium, low := 0, 0, 0
	for _, a := range report.Areas {
		switch a.Severity {
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		case model.SeverityLow:
			low++
		}
	}

	var parts []string
	if high > 0 {
		parts = append(parts, fmt.Sprintf("%d area(s) require immediate attention", high))
	}
	if medium > 0 {
		parts = append(parts, fmt.Sprintf("%d area(s) need monitoring and remediation", medium))
	}
	if low > 0 {
		parts = append(parts, fmt.Sprintf("%d area(s) have minor issues", low))
	}

	if report.CorrelationResult != nil && len(report.CorrelationResult.RootCauses) > 0 {
		parts = append(parts, fmt.Sprintf("%d probable root cause(s) identified", len(report.CorrelationResult.RootCauses)))
	}

	switch level {
	case model.SeverityHigh:
		parts = append(parts, "Immediate professional intervention recommended")
	case model.SeverityMedium:
		parts = append(parts, "Timely remediation advised to prevent escalation")
	default:
		parts = append(parts, "Regular monitoring recommended")
	}

	return strings.Join(parts, ". ") + "."
}

func (e *Engine) multiplier(name string, fallback float64) float64 {
	if m, ok := e.cfg.AreaMultipliers[name]; ok && m > 0 {
		return m
	}
	return fallback
}

func countAreasWith(areas []*model.AreaObservation, keyword string) int {
	count := 0
	for _, a := range areas {
		for _, f := range a.NegativeFindings {
			if strings.Contains(strings.ToLower(f), keyword) {
				count++
				break
			}
		}
	}
	return count
}

func countAreaNamesWith(areas []*model.AreaObservation, keyword string) int {
	count := 0
	for _, a := range areas {
		if strings.Contains(strings.ToLower(a.AreaName), keyword) {
			count++
		}
	}
	return count
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
