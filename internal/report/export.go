package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/inspectech/ddr/internal/core/model"
)

// RenderMarkdown assembles the final report document.
func RenderMarkdown(r *model.DDRReport) string {
	var b strings.Builder

	b.WriteString("# Detailed Diagnostic Report (DDR)\n\n")
	b.WriteString("## Property Information\n")
	b.WriteString(formatPropertyDetails(r.PropertyDetails))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 1. Property Issue Summary\n")
	b.WriteString(orNotAvailable(r.PropertyIssueSummary))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 2. Area-wise Observations\n")
	b.WriteString(orNotAvailable(r.AreaWiseObservations))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 3. Probable Root Cause\n")
	b.WriteString(orNotAvailable(r.ProbableRootCause))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 4. Severity Assessment\n")
	if sev := r.SeverityAssessment; sev != nil {
		fmt.Fprintf(&b, "**Overall Severity:** %s\n\n", sev.OverallSeverity)
		fmt.Fprintf(&b, "**Assessment Score:** %.2f/1.0\n\n", sev.SeverityScore)
		fmt.Fprintf(&b, "**Reasoning:** %s\n\n", sev.Reasoning)
		b.WriteString("### Priority Areas\n\n")
		fmt.Fprintf(&b, "**High Priority (Immediate Attention Required):**\n%s\n\n", formatPriorityList(sev.HighPriorityAreas))
		fmt.Fprintf(&b, "**Medium Priority (Short-term Action Needed):**\n%s\n\n", formatPriorityList(sev.MediumPriorityAreas))
		fmt.Fprintf(&b, "**Low Priority (Monitor):**\n%s\n", formatPriorityList(sev.LowPriorityAreas))
	} else {
		b.WriteString("Not Available\n")
	}
	b.WriteString("\n---\n\n")

	b.WriteString("## 5. Recommended Actions\n")
	b.WriteString(orNotAvailable(r.RecommendedActions))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 6. Additional Notes\n")
	b.WriteString(orNotAvailable(r.AdditionalNotes))
	b.WriteString("\n\n---\n\n")

	b.WriteString("## 7. Missing or Unclear Information\n")
	if len(r.MissingInformation) > 0 {
		for _, m := range r.MissingInformation {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	} else {
		b.WriteString("All key information available\n")
	}
	b.WriteString("\n---\n\n")

	fmt.Fprintf(&b, "**Report Generated:** %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	b.WriteString("*This report is based on inspection and thermal imaging data. For detailed remediation, please consult licensed professionals.*\n")

	return b.String()
}

// ExportMarkdown writes the rendered report to path.
func ExportMarkdown(r *model.DDRReport, path string) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

// ExportJSON writes the structured report to path.
func ExportJSON(r *model.DDRReport, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not Available"
	}
	return s
}
