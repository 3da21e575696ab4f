package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectech/ddr/internal/config"
	"github.com/inspectech/ddr/internal/core/model"
)

func buildFixtureReport(t *testing.T, p *Pipeline) *model.DDRReport {
	t.Helper()

	cold := 20.1
	return p.BuildReport(&model.ExtractionResult{
		PropertyDetails: model.PropertyDetails{Address: "14 Harbour View"},
		RawNegativeFindings: map[string][]string{
			"Hall Skirting": {"Skirting dampness near entrance", "skirting dampness near entrance"},
			"Hall Ceiling":  {"Efflorescence observed"},
			"Common Bathroom": {
				"Severe dampness below washbasin",
			},
		},
		RawPositiveFindings: map[string][]string{
			"Common Bathroom": {"Tile joint gap near shower tray"},
		},
		ThermalData: map[string]*model.ThermalEvidence{
			"Hall Skirting": {ColdSpotTemp: &cold, HasColdZones: true},
		},
	})
}

func TestBuildReport(t *testing.T) {
	p := NewPipeline(config.Default(), nil)
	report := buildFixtureReport(t, p)

	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, "Structural Diagnostic Report", report.PropertyDetails.ReportType)
	require.Len(t, report.Areas, 3)

	// Areas sorted by name.
	assert.Equal(t, "Common Bathroom", report.Areas[0].AreaName)
	assert.Equal(t, "Hall Ceiling", report.Areas[1].AreaName)
	assert.Equal(t, "Hall Skirting", report.Areas[2].AreaName)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	p := NewPipeline(config.Default(), nil)
	report := buildFixtureReport(t, p)

	p.Analyze(context.Background(), report)

	// Hall Skirting and Hall Ceiling merge into Hall.
	require.Len(t, report.Areas, 2)
	var hall *model.AreaObservation
	for _, a := range report.Areas {
		if a.AreaName == "Hall" {
			hall = a
		}
	}
	require.NotNil(t, hall)

	// Exact duplicate collapsed during dedup.
	assert.Equal(t, []string{"Efflorescence observed", "Skirting dampness near entrance"}, hall.NegativeFindings)
	require.NotNil(t, hall.ThermalEvidence)
	assert.True(t, hall.ThermalEvidence.HasColdZones)

	require.NotNil(t, report.CorrelationResult)
	assert.NotEmpty(t, report.CorrelationResult.RootCauses)

	require.NotNil(t, report.SeverityAssessment)
	assert.GreaterOrEqual(t, report.SeverityAssessment.SeverityScore, 0.0)
	assert.LessOrEqual(t, report.SeverityAssessment.SeverityScore, 1.0)

	for _, area := range report.Areas {
		require.NotNil(t, area.SeverityScore)
		assert.NotEmpty(t, area.Severity)
	}
}

func TestAnalyze_EmptyReport(t *testing.T) {
	p := NewPipeline(config.Default(), nil)
	report := p.BuildReport(&model.ExtractionResult{})

	p.Analyze(context.Background(), report)

	require.NotNil(t, report.CorrelationResult)
	require.NotNil(t, report.SeverityAssessment)
	assert.Equal(t, model.SeverityLow, report.SeverityAssessment.OverallSeverity)
	assert.Equal(t, 0.0, report.SeverityAssessment.SeverityScore)
}

func TestAnalyze_DedupDisabled(t *testing.T) {
	p := NewPipeline(config.Default(), nil)
	p.EnableDedup = false

	report := p.BuildReport(&model.ExtractionResult{
		RawNegativeFindings: map[string][]string{
			"Kitchen": {"dampness", "dampness"},
		},
	})
	p.Analyze(context.Background(), report)

	require.Len(t, report.Areas, 1)
	assert.Len(t, report.Areas[0].NegativeFindings, 2)
}
