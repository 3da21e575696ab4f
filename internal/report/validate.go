package report

import (
	"fmt"
	"strings"

	"github.com/inspectech/ddr/internal/core/model"
)

// ValidationResult summarizes report completeness. Issues block a report from
// being considered valid; warnings do not.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
	Score    float64  `json:"score"`
}

// Validate checks report completeness and computes a quality score in [0,1].
func Validate(r *model.DDRReport) ValidationResult {
	var issues, warnings []string

	if r.PropertyDetails.Address == "" {
		warnings = append(warnings, "Missing property address")
	}
	if r.PropertyDetails.InspectionDate == "" {
		warnings = append(warnings, "Missing inspection date")
	}

	if len(r.Areas) == 0 {
		issues = append(issues, "No areas found in report")
	} else if len(r.AffectedAreas()) == 0 {
		warnings = append(warnings, "No issues found in any area")
	}

	for _, area := range r.Areas {
		for _, f := range area.NegativeFindings {
			if len(strings.TrimSpace(f)) < 3 {
				warnings = append(warnings, fmt.Sprintf("Very short finding in %s: '%s'", area.AreaName, f))
			}
		}
	}

	if r.SeverityAssessment == nil {
		warnings = append(warnings, "Missing severity assessment")
	}
	if r.CorrelationResult == nil {
		warnings = append(warnings, "Missing correlation analysis")
	}

	if r.PropertyIssueSummary == "" {
		issues = append(issues, "Missing property issue summary")
	}
	if r.AreaWiseObservations == "" {
		issues = append(issues, "Missing area-wise observations")
	}

	return ValidationResult{
		IsValid:  len(issues) == 0,
		Issues:   issues,
		Warnings: warnings,
		Score:    qualityScore(r),
	}
}

// qualityScore awards weighted points for present report components.
func qualityScore(r *model.DDRReport) float64 {
	score := 0.0
	const maxScore = 10.0

	if r.PropertyDetails.Address != "" {
		score += 0.5
	}
	if r.PropertyDetails.InspectionDate != "" {
		score += 0.5
	}

	if len(r.Areas) > 0 {
		score += 2.0
	}

	if r.CorrelationResult != nil {
		score += 1.5
		if len(r.CorrelationResult.RootCauses) > 0 {
			score += 0.5
		}
	}
	if r.SeverityAssessment != nil {
		score += 2.0
	}

	if r.PropertyIssueSummary != "" {
		score += 1.0
	}
	if r.AreaWiseObservations != "" {
		score += 1.0
	}
	if r.ProbableRootCause != "" {
		score += 0.5
	}
	if r.RecommendedActions != "" {
		score += 0.5
	}

	return score / maxScore
}
