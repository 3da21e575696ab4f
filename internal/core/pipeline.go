package core

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/inspectech/ddr/internal/config"
	"github.com/inspectech/ddr/internal/core/correlate"
	"github.com/inspectech/ddr/internal/core/dedupe"
	"github.com/inspectech/ddr/internal/core/merge"
	"github.com/inspectech/ddr/internal/core/model"
	"github.com/inspectech/ddr/internal/core/severity"
	"github.com/inspectech/ddr/internal/llm"
)

// Pipeline runs the diagnostic analysis stages in their strict data-dependency
// order: merge -> dedup -> correlate -> score. Stages are pure transformations
// over the report; only the optional embedding scorer reaches out of process.
type Pipeline struct {
	Merger         *merge.Merger
	Deduplicator   *dedupe.Deduplicator
	Correlator     *correlate.Engine
	SeverityEngine *severity.Engine

	EnableDedup bool
}

func NewPipeline(cfg *config.Config, embedder llm.EmbedderClient) *Pipeline {
	return &Pipeline{
		Merger:         merge.NewMerger(),
		Deduplicator:   dedupe.NewDeduplicator(cfg.Deduplication, embedder),
		Correlator:     correlate.NewEngine(cfg.Correlation),
		SeverityEngine: severity.NewEngine(cfg.Severity),
		EnableDedup:    true,
	}
}

// BuildReport structures the extraction collaborator's raw maps into a report:
// one AreaObservation per distinct area name, sorted by name.
func (p *Pipeline) BuildReport(result *model.ExtractionResult) *model.DDRReport {
	names := make(map[string]bool)
	for name := range result.RawNegativeFindings {
		names[name] = true
	}
	for name := range result.RawPositiveFindings {
		names[name] = true
	}
	for name := range result.ThermalData {
		names[name] = true
	}

	areas := make([]*model.AreaObservation, 0, len(names))
	for name := range names {
		areas = append(areas, &model.AreaObservation{
			AreaName:         name,
			NegativeFindings: result.RawNegativeFindings[name],
			PositiveFindings: result.RawPositiveFindings[name],
			ThermalEvidence:  result.ThermalData[name],
		})
	}
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].AreaName < areas[j].AreaName
	})

	details := result.PropertyDetails
	if details.ReportType == "" {
		details.ReportType = "Structural Diagnostic Report"
	}

	return &model.DDRReport{
		ReportID:        uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		PropertyDetails: details,
		Areas:           areas,
	}
}

// Analyze mutates the report in place: areas are merged and deduplicated, then
// CorrelationResult and SeverityAssessment are populated. It never fails;
// degraded similarity scoring is logged inside the deduplicator.
func (p *Pipeline) Analyze(ctx context.Context, report *model.DDRReport) {
	report.Areas = p.Merger.MergeAreas(report.Areas)
	log.Printf("Structured %d unique area(s)", len(report.Areas))

	if p.EnableDedup {
		for _, area := range report.Areas {
			area.NegativeFindings = p.Deduplicator.DeduplicateFindings(ctx, area.NegativeFindings)
			area.PositiveFindings = p.Deduplicator.DeduplicateFindings(ctx, area.PositiveFindings)
		}
	}

	report.CorrelationResult = p.Correlator.Correlate(report.Areas)
	log.Printf("Identified %d root cause(s)", len(report.CorrelationResult.RootCauses))

	report.SeverityAssessment = p.SeverityEngine.AssessSeverity(report)
	log.Printf("Overall severity: %s", report.SeverityAssessment.OverallSeverity)
}
