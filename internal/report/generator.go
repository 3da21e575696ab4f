package report

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/inspectech/ddr/internal/core/model"
	"github.com/inspectech/ddr/internal/llm"
)

// Generator turns the analysis pipeline's structured output into the prose
// report sections, calling the text model per section. A nil client or a
// generation failure degrades to a deterministic rendering of the same data;
// the report is never lost to an LLM outage.
type Generator struct {
	LLM llm.LLMClient
}

func NewGenerator(llmClient llm.LLMClient) *Generator {
	return &Generator{LLM: llmClient}
}

// GenerateSections populates the report's prose fields in place.
func (g *Generator) GenerateSections(ctx context.Context, report *model.DDRReport) {
	report.PropertyIssueSummary = g.propertySummary(ctx, report)
	report.AreaWiseObservations = g.areaObservations(ctx, report)
	report.ProbableRootCause = g.rootCauseAnalysis(ctx, report)
	report.RecommendedActions = g.recommendedActions(ctx, report)
	report.AdditionalNotes = additionalNotes(report)
	report.MissingInformation = missingInformation(report)
}

func (g *Generator) propertySummary(ctx context.Context, report *model.DDRReport) string {
	affected := report.AffectedAreas()
	areasList := strings.Join(affected, ", ")
	if areasList == "" {
		areasList = "Not Available"
	}

	severityInfo := "Not Available"
	if report.SeverityAssessment != nil {
		severityInfo = fmt.Sprintf("%s (Score: %.2f/1.0)",
			report.SeverityAssessment.OverallSeverity,
			report.SeverityAssessment.SeverityScore)
	}

	rootCauses := "Not Available"
	if report.CorrelationResult != nil && len(report.CorrelationResult.RootCauses) > 0 {
		rootCauses = formatRootCauses(report.CorrelationResult.RootCauses)
	}

	prompt := fmt.Sprintf(propertySummaryPrompt,
		formatPropertyDetails(report.PropertyDetails),
		len(affected), areasList, severityInfo, rootCauses)

	return g.callLLM(ctx, prompt, func() string {
		return fmt.Sprintf("Inspection identified issues in %d area(s): %s. Overall severity: %s.",
			len(affected), areasList, severityInfo)
	})
}

func (g *Generator) areaObservations(ctx context.Context, report *model.DDRReport) string {
	areaData := formatAreaData(report.Areas)
	prompt := fmt.Sprintf(areaObservationsPrompt, areaData)

	return g.callLLM(ctx, prompt, func() string {
		return areaData
	})
}

func (g *Generator) rootCauseAnalysis(ctx context.Context, report *model.DDRReport) string {
	if report.CorrelationResult == nil {
		return "Not Available - Correlation analysis not performed"
	}
	cr := report.CorrelationResult

	causesData := formatRootCauses(cr.RootCauses)
	if causesData == "" {
		causesData = "No specific root causes identified"
	}

	linkAreas := make([]string, 0, len(cr.CrossAreaLinks))
	for area := range cr.CrossAreaLinks {
		linkAreas = append(linkAreas, area)
	}
	sort.Strings(linkAreas)

	var linksText strings.Builder
	for _, area := range linkAreas {
		fmt.Fprintf(&linksText, "\n**%s:**\n", area)
		for _, link := range cr.CrossAreaLinks[area] {
			fmt.Fprintf(&linksText, "- %s\n", link)
		}
	}
	links := linksText.String()
	if links == "" {
		links = "No cross-area correlations found"
	}

	conflicts := "None"
	if len(cr.Conflicts) > 0 {
		conflicts = strings.Join(cr.Conflicts, "\n")
	}

	prompt := fmt.Sprintf(rootCausePrompt, causesData, links, conflicts)

	return g.callLLM(ctx, prompt, func() string {
		return causesData
	})
}

func (g *Generator) recommendedActions(ctx context.Context, report *model.DDRReport) string {
	if report.SeverityAssessment == nil {
		return "Not Available - Severity assessment not performed"
	}
	sev := report.SeverityAssessment

	rootCauses := "No root causes identified"
	if report.CorrelationResult != nil && len(report.CorrelationResult.RootCauses) > 0 {
		rootCauses = formatRootCauses(report.CorrelationResult.RootCauses)
	}

	prompt := fmt.Sprintf(recommendedActionsPrompt,
		sev.OverallSeverity,
		formatPriorityList(sev.HighPriorityAreas),
		formatPriorityList(sev.MediumPriorityAreas),
		formatPriorityList(sev.LowPriorityAreas),
		rootCauses)

	return g.callLLM(ctx, prompt, func() string {
		return fmt.Sprintf(
			"Immediate attention: %s. Short-term action: %s. Monitor: %s. Consult a licensed professional for remediation.",
			formatPriorityList(sev.HighPriorityAreas),
			formatPriorityList(sev.MediumPriorityAreas),
			formatPriorityList(sev.LowPriorityAreas))
	})
}

// callLLM invokes the model and falls back to the deterministic rendering on
// any failure.
func (g *Generator) callLLM(ctx context.Context, prompt string, fallback func() string) string {
	if g.LLM == nil {
		return fallback()
	}

	response, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Warning: report section generation failed: %v. Using structured fallback.", err)
		return fallback()
	}
	return strings.TrimSpace(response)
}

func additionalNotes(report *model.DDRReport) string {
	var notes []string

	thermalCount := 0
	for _, area := range report.Areas {
		if area.ThermalEvidence != nil {
			thermalCount++
		}
	}
	if thermalCount > 0 {
		notes = append(notes, fmt.Sprintf(
			"Thermal imaging was used in %d area(s) to detect temperature anomalies indicating moisture presence.",
			thermalCount))
	}

	if report.CorrelationResult != nil && len(report.CorrelationResult.RootCauses) > 0 {
		notes = append(notes, fmt.Sprintf(
			"Cross-area analysis identified %d probable root cause(s) linking multiple observations.",
			len(report.CorrelationResult.RootCauses)))
	}

	if len(notes) == 0 {
		return "No additional notes."
	}
	return strings.Join(notes, "\n\n")
}

func missingInformation(report *model.DDRReport) []string {
	var missing []string

	if report.PropertyDetails.Address == "" {
		missing = append(missing, "Property address")
	}
	if report.PropertyDetails.InspectionDate == "" {
		missing = append(missing, "Inspection date")
	}
	if report.PropertyDetails.InspectorName == "" {
		missing = append(missing, "Inspector name")
	}

	var noThermal []string
	for _, area := range report.Areas {
		if area.HasIssues() && area.ThermalEvidence == nil {
			noThermal = append(noThermal, area.AreaName)
		}
	}
	if len(noThermal) > 0 {
		missing = append(missing, fmt.Sprintf("Thermal imaging data for: %s", strings.Join(noThermal, ", ")))
	}

	if report.CorrelationResult != nil && len(report.CorrelationResult.Conflicts) > 0 {
		missing = append(missing, fmt.Sprintf(
			"Conflicting information detected: %d conflict(s)", len(report.CorrelationResult.Conflicts)))
	}

	if len(missing) == 0 {
		return []string{"All key information available"}
	}
	return missing
}
