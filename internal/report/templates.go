package report

import (
	"fmt"
	"strings"

	"github.com/inspectech/ddr/internal/core/model"
)

const propertySummaryPrompt = `Generate a concise Property Issue Summary (2-3 paragraphs) based on this data:

Property Details:
%s

Areas Affected (%d):
%s

Severity Assessment:
%s

Root Causes Identified:
%s

Create an executive summary that introduces the property and inspection scope,
summarizes the main issues found and highlights the most critical concerns.
Use client-friendly language. If any data is missing, write "Not Available" for that specific item.`

const areaObservationsPrompt = `Generate detailed Area-wise Observations based on this structured data:

%s

For each area, provide the area name as heading, issues found, probable causes identified,
thermal evidence if available, and an overall assessment.
Format as a structured markdown list with clear headings.
If thermal data shows cold zones, explain that this indicates moisture presence.
Use specific details from the data - do not generalize or add information not present.`

const rootCausePrompt = `Generate a Probable Root Cause Analysis based on this correlation data:

Identified Root Causes:
%s

Cross-Area Correlations:
%s

Conflicts Detected:
%s

Provide the main root causes with supporting evidence, how different areas are
interconnected, any conflicts or uncertainties in the data, and the confidence
level for each cause. Explain technical correlations in simple terms.
If conflicts exist, clearly state them as "Conflicting Information: [describe conflict]".`

const recommendedActionsPrompt = `Generate Recommended Actions based on severity assessment and root causes:

Severity Level: %s

High Priority Areas:
%s

Medium Priority Areas:
%s

Low Priority Areas:
%s

Root Causes:
%s

Provide prioritized recommendations: Immediate Actions for HIGH severity issues,
Short-term Actions for MEDIUM, and Monitoring for LOW.
Keep recommendations practical and specific to the issues found.
Include advice like "Consult a licensed professional" where appropriate.
Do not recommend specific contractors or products.`

func formatPropertyDetails(d model.PropertyDetails) string {
	var parts []string

	if d.Address != "" {
		parts = append(parts, fmt.Sprintf("**Address:** %s", d.Address))
	} else {
		parts = append(parts, "**Address:** Not Available")
	}
	if d.InspectionDate != "" {
		parts = append(parts, fmt.Sprintf("**Inspection Date:** %s", d.InspectionDate))
	}
	if d.InspectorName != "" {
		parts = append(parts, fmt.Sprintf("**Inspector:** %s", d.InspectorName))
	}
	if d.PropertyID != "" {
		parts = append(parts, fmt.Sprintf("**Property ID:** %s", d.PropertyID))
	}

	return strings.Join(parts, "\n")
}

func formatAreaData(areas []*model.AreaObservation) string {
	var sections []string

	for _, area := range areas {
		if !area.HasIssues() {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "\n### %s\n", area.AreaName)

		if len(area.NegativeFindings) > 0 {
			b.WriteString("**Issues Found:**\n")
			for _, f := range area.NegativeFindings {
				fmt.Fprintf(&b, "- %s\n", f)
			}
		}
		if len(area.PositiveFindings) > 0 {
			b.WriteString("**Probable Causes:**\n")
			for _, f := range area.PositiveFindings {
				fmt.Fprintf(&b, "- %s\n", f)
			}
		}
		if area.ThermalEvidence != nil {
			fmt.Fprintf(&b, "**Thermal Evidence:** %s\n", area.ThermalEvidence.Summary())
		}
		if area.Severity != "" {
			fmt.Fprintf(&b, "**Severity:** %s\n", area.Severity)
		}

		sections = append(sections, b.String())
	}

	if len(sections) == 0 {
		return "No significant issues detected"
	}
	return strings.Join(sections, "\n")
}

func formatRootCauses(causes []model.RootCause) string {
	if len(causes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, cause := range causes {
		fmt.Fprintf(&b, "%d. %s (Confidence: %s)\n", i+1, cause.CauseDescription, cause.Confidence)
		fmt.Fprintf(&b, "   Affected areas: %s\n", strings.Join(cause.AffectedAreas, ", "))
		for _, ev := range cause.SupportingEvidence {
			fmt.Fprintf(&b, "   - %s\n", ev)
		}
	}
	return b.String()
}

func formatPriorityList(areas []string) string {
	if len(areas) == 0 {
		return "None"
	}

	var b strings.Builder
	for _, a := range areas {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return strings.TrimRight(b.String(), "\n")
}
