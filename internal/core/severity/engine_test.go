package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectech/ddr/internal/config"
	"github.com/inspectech/ddr/internal/core/model"
)

func newEngine() *Engine {
	return NewEngine(config.Default().Severity)
}

func TestScoreArea_NoIssues(t *testing.T) {
	e := newEngine()

	score, reasoning := e.ScoreArea(&model.AreaObservation{AreaName: "Hall"}, nil)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "No issues found", reasoning)
}

func TestScoreArea_ActiveLeakageRuleFloorsScore(t *testing.T) {
	e := newEngine()

	area := &model.AreaObservation{
		AreaName:         "Store Room",
		NegativeFindings: []string{"Active leakage near plumbing joint"},
	}

	score, reasoning := e.ScoreArea(area, []*model.AreaObservation{area})
	assert.GreaterOrEqual(t, score, 0.8)
	assert.Contains(t, reasoning, "Active leakage with plumbing issues requires immediate attention")
}

func TestScoreArea_BoundedAndRounded(t *testing.T) {
	e := newEngine()

	// Many heavy keyword hits push the raw sum far past 1.
	area := &model.AreaObservation{
		AreaName: "External Wall",
		NegativeFindings: []string{
			"Severe leakage and dampness",
			"Leakage through crack",
			"Dampness with efflorescence",
		},
	}

	score, _ := e.ScoreArea(area, []*model.AreaObservation{area})
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestScoreArea_MultiplierTrail(t *testing.T) {
	e := newEngine()

	cold := 19.0
	area := &model.AreaObservation{
		AreaName:         "Master Bathroom Wall",
		NegativeFindings: []string{"Dampness on wall", "Crack near tile"},
		PositiveFindings: []string{"Tile joint gap"},
		ThermalEvidence:  &model.ThermalEvidence{ColdSpotTemp: &cold, HasColdZones: true},
	}

	_, reasoning := e.ScoreArea(area, []*model.AreaObservation{area})
	assert.Contains(t, reasoning, "multiple issues (3 findings)")
	assert.Contains(t, reasoning, "thermal evidence of moisture")
	// Structural and wet-area multipliers are not mutually exclusive.
	assert.Contains(t, reasoning, "structural element affected")
	assert.Contains(t, reasoning, "wet area concerns")
}

func TestScoreArea_MildIsolatedRule(t *testing.T) {
	e := newEngine()

	area := &model.AreaObservation{
		AreaName:         "Balcony",
		NegativeFindings: []string{"Mild dampness observed"},
	}

	score, reasoning := e.ScoreArea(area, []*model.AreaObservation{area})
	assert.Contains(t, reasoning, "Mild and isolated dampness with no active leakage")
	// LOW rules never lift the score.
	assert.Less(t, score, 0.8)
}

func TestScoreArea_RecurringDampnessAcrossReport(t *testing.T) {
	e := newEngine()

	mk := func(name string) *model.AreaObservation {
		return &model.AreaObservation{
			AreaName:         name,
			NegativeFindings: []string{"Dampness patch"},
		}
	}
	all := []*model.AreaObservation{mk("Hall"), mk("Kitchen"), mk("Balcony")}

	_, reasoning := e.ScoreArea(all[0], all)
	assert.Contains(t, reasoning, "Recurring dampness across multiple areas indicates ongoing moisture ingress")
	// The shared-keyword multiplier also fires: two other areas report
	// dampness.
	assert.Contains(t, reasoning, "similar issues in 3 areas")
}

func TestAssessSeverity_PriorityListsPartitionAreas(t *testing.T) {
	e := newEngine()

	report := &model.DDRReport{
		Areas: []*model.AreaObservation{
			{
				AreaName:         "External Wall",
				NegativeFindings: []string{"Active leakage near plumbing shaft"},
			},
			{
				AreaName:         "Hall",
				NegativeFindings: []string{"Dampness near skirting"},
			},
			{
				AreaName: "Kitchen",
			},
		},
	}

	assessment := e.AssessSeverity(report)
	require.NotNil(t, assessment)

	total := len(assessment.HighPriorityAreas) +
		len(assessment.MediumPriorityAreas) +
		len(assessment.LowPriorityAreas)
	assert.Equal(t, len(report.Areas), total)

	assert.Contains(t, assessment.HighPriorityAreas, "External Wall")
	assert.Contains(t, assessment.LowPriorityAreas, "Kitchen")

	for _, area := range report.Areas {
		require.NotNil(t, area.SeverityScore)
		assert.GreaterOrEqual(t, *area.SeverityScore, 0.0)
		assert.LessOrEqual(t, *area.SeverityScore, 1.0)
		assert.NotEmpty(t, area.Severity)
	}

	assert.GreaterOrEqual(t, assessment.SeverityScore, 0.0)
	assert.LessOrEqual(t, assessment.SeverityScore, 1.0)
}

func TestAssessSeverity_IssueFreeAreasDoNotDiluteOverall(t *testing.T) {
	e := newEngine()

	report := &model.DDRReport{
		Areas: []*model.AreaObservation{
			{
				AreaName:         "External Wall",
				NegativeFindings: []string{"Active leakage near plumbing shaft"},
			},
			{AreaName: "Kitchen"},
			{AreaName: "Hall"},
		},
	}

	assessment := e.AssessSeverity(report)

	// One severe area among issue-free areas keeps the overall level HIGH;
	// zero scores stay out of the max/mean aggregate.
	assert.Equal(t, model.SeverityHigh, assessment.OverallSeverity)
	assert.Equal(t, 1.0, assessment.SeverityScore)
}

func TestAssessSeverity_UnrecognizedFindingsScoreZero(t *testing.T) {
	e := newEngine()

	report := &model.DDRReport{
		Areas: []*model.AreaObservation{
			{
				AreaName:         "Hall",
				NegativeFindings: []string{"Peeling paint near window"},
			},
		},
	}

	assessment := e.AssessSeverity(report)

	assert.Equal(t, model.SeverityLow, assessment.OverallSeverity)
	assert.Equal(t, 0.0, assessment.SeverityScore)
	assert.Equal(t, "No significant issues identified", assessment.Reasoning)
}

func TestScoreArea_NoSharedKeywordNoMultiplier(t *testing.T) {
	e := newEngine()

	hall := &model.AreaObservation{
		AreaName:         "Hall",
		NegativeFindings: []string{"Dampness patch"},
	}
	all := []*model.AreaObservation{
		hall,
		{AreaName: "Kitchen", NegativeFindings: []string{"Crack near window"}},
		{AreaName: "Balcony", NegativeFindings: []string{"Efflorescence deposits"}},
	}

	_, reasoning := e.ScoreArea(hall, all)
	assert.NotContains(t, reasoning, "similar issues")
}

func TestAssessSeverity_EmptyReport(t *testing.T) {
	e := newEngine()

	assessment := e.AssessSeverity(&model.DDRReport{})
	assert.Equal(t, model.SeverityLow, assessment.OverallSeverity)
	assert.Equal(t, 0.0, assessment.SeverityScore)
	assert.Equal(t, "No significant issues identified", assessment.Reasoning)
}

func TestAssessSeverity_OverallReasoningMentionsRootCauses(t *testing.T) {
	e := newEngine()

	report := &model.DDRReport{
		Areas: []*model.AreaObservation{
			{
				AreaName:         "Hall",
				NegativeFindings: []string{"Dampness near skirting"},
			},
		},
		CorrelationResult: &model.CorrelationResult{
			RootCauses: []model.RootCause{
				{CauseDescription: "Plumbing seepage", AffectedAreas: []string{"Hall"}},
			},
		},
	}

	assessment := e.AssessSeverity(report)
	assert.Contains(t, assessment.Reasoning, "1 probable root cause(s) identified")
}
