package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectech/ddr/internal/core/model"
)

// MockLLM returns canned text, or an error when Err is set. Prompts are
// recorded for assertions.
type MockLLM struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func sampleReport() *model.DDRReport {
	score := 0.82
	return &model.DDRReport{
		ReportID:    "test-report",
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		PropertyDetails: model.PropertyDetails{
			Address:    "14 Harbour View",
			ReportType: "Structural Diagnostic Report",
		},
		Areas: []*model.AreaObservation{
			{
				AreaName:         "Common Bathroom",
				NegativeFindings: []string{"Dampness below washbasin"},
				PositiveFindings: []string{"Tile joint gap near shower"},
				Severity:         model.SeverityHigh,
				SeverityScore:    &score,
			},
			{AreaName: "Kitchen"},
		},
		CorrelationResult: &model.CorrelationResult{
			RootCauses: []model.RootCause{
				{
					CauseDescription:   "Tile gaps allowing water seepage",
					AffectedAreas:      []string{"Common Bathroom"},
					SupportingEvidence: []string{"Dampness below washbasin"},
					Confidence:         model.ConfidenceMedium,
				},
			},
			CrossAreaLinks: map[string][]string{
				"Common Bathroom": {"Tile gaps allowing water seepage: Dampness below washbasin + Tile joint gap near shower"},
			},
		},
		SeverityAssessment: &model.SeverityAssessment{
			OverallSeverity:     model.SeverityHigh,
			SeverityScore:       0.82,
			Reasoning:           "1 area(s) with significant issues.",
			HighPriorityAreas:   []string{"Common Bathroom"},
			MediumPriorityAreas: []string{},
			LowPriorityAreas:    []string{"Kitchen"},
		},
	}
}

func TestGenerateSections_UsesLLMOutput(t *testing.T) {
	mock := &MockLLM{Response: "  Generated section text.  "}
	g := NewGenerator(mock)
	report := sampleReport()

	g.GenerateSections(context.Background(), report)

	assert.Equal(t, "Generated section text.", report.PropertyIssueSummary)
	assert.Equal(t, "Generated section text.", report.AreaWiseObservations)
	assert.Equal(t, "Generated section text.", report.ProbableRootCause)
	assert.Equal(t, "Generated section text.", report.RecommendedActions)

	// One call per LLM-backed section.
	assert.Len(t, mock.Prompts, 4)
	assert.Contains(t, mock.Prompts[0], "14 Harbour View")
	assert.Contains(t, mock.Prompts[2], "Tile gaps allowing water seepage")
}

func TestGenerateSections_NilClientFallsBack(t *testing.T) {
	g := NewGenerator(nil)
	report := sampleReport()

	g.GenerateSections(context.Background(), report)

	assert.Contains(t, report.PropertyIssueSummary, "Common Bathroom")
	assert.Contains(t, report.PropertyIssueSummary, "HIGH")
	assert.Contains(t, report.AreaWiseObservations, "Dampness below washbasin")
	assert.Contains(t, report.ProbableRootCause, "Tile gaps allowing water seepage")
	assert.Contains(t, report.RecommendedActions, "Common Bathroom")
}

func TestGenerateSections_ErrorFallsBack(t *testing.T) {
	mock := &MockLLM{Err: errors.New("model unavailable")}
	g := NewGenerator(mock)
	report := sampleReport()

	g.GenerateSections(context.Background(), report)

	assert.Contains(t, report.PropertyIssueSummary, "Common Bathroom")
	assert.Contains(t, report.ProbableRootCause, "Tile gaps allowing water seepage")
	assert.Len(t, mock.Prompts, 4)
}

func TestGenerateSections_DeterministicSections(t *testing.T) {
	thermal := &model.ThermalEvidence{HasColdZones: true}
	report := sampleReport()
	report.Areas[0].ThermalEvidence = thermal

	g := NewGenerator(nil)
	g.GenerateSections(context.Background(), report)

	assert.Contains(t, report.AdditionalNotes, "Thermal imaging was used in 1 area(s)")
	assert.Contains(t, report.AdditionalNotes, "1 probable root cause(s)")

	// Address present, date and inspector absent.
	require.NotEmpty(t, report.MissingInformation)
	assert.Contains(t, report.MissingInformation, "Inspection date")
	assert.Contains(t, report.MissingInformation, "Inspector name")
	assert.NotContains(t, report.MissingInformation, "Property address")
}

func TestGenerateSections_MissingAnalyses(t *testing.T) {
	report := &model.DDRReport{
		Areas: []*model.AreaObservation{{AreaName: "Hall"}},
	}
	g := NewGenerator(&MockLLM{Response: "text"})

	g.GenerateSections(context.Background(), report)

	assert.Equal(t, "Not Available - Correlation analysis not performed", report.ProbableRootCause)
	assert.Equal(t, "Not Available - Severity assessment not performed", report.RecommendedActions)
}
