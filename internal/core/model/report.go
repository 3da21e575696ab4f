package model

import "time"

// PropertyDetails is inspection metadata passed through from the caller.
type PropertyDetails struct {
	PropertyID     string `json:"property_id,omitempty"`
	Address        string `json:"address,omitempty"`
	InspectionDate string `json:"inspection_date,omitempty"`
	InspectorName  string `json:"inspector_name,omitempty"`
	ReportType     string `json:"report_type"`
}

// DDRReport is the complete Detailed Diagnostic Report. The analysis pipeline
// populates Areas, CorrelationResult and SeverityAssessment; the prose sections
// are filled in by the report generator.
type DDRReport struct {
	ReportID        string          `json:"report_id"`
	GeneratedAt     time.Time       `json:"generated_at"`
	PropertyDetails PropertyDetails `json:"property_details"`

	Areas []*AreaObservation `json:"areas"`

	CorrelationResult  *CorrelationResult  `json:"correlation_result,omitempty"`
	SeverityAssessment *SeverityAssessment `json:"severity_assessment,omitempty"`

	PropertyIssueSummary string   `json:"property_issue_summary,omitempty"`
	AreaWiseObservations string   `json:"area_wise_observations,omitempty"`
	ProbableRootCause    string   `json:"probable_root_cause,omitempty"`
	RecommendedActions   string   `json:"recommended_actions,omitempty"`
	AdditionalNotes      string   `json:"additional_notes,omitempty"`
	MissingInformation   []string `json:"missing_information,omitempty"`
}

// AffectedAreas lists the names of areas that have at least one finding.
func (r *DDRReport) AffectedAreas() []string {
	var names []string
	for _, a := range r.Areas {
		if a.HasIssues() {
			names = append(names, a.AreaName)
		}
	}
	return names
}

// TotalIssueCount counts findings across all areas.
func (r *DDRReport) TotalIssueCount() int {
	total := 0
	for _, a := range r.Areas {
		total += len(a.NegativeFindings) + len(a.PositiveFindings)
	}
	return total
}

// ExtractionResult is the input boundary: per-area raw findings and thermal
// readings handed over by the document-extraction collaborator.
type ExtractionResult struct {
	PropertyDetails     PropertyDetails             `json:"property_details"`
	RawNegativeFindings map[string][]string         `json:"raw_negative_findings"`
	RawPositiveFindings map[string][]string         `json:"raw_positive_findings"`
	ThermalData         map[string]*ThermalEvidence `json:"thermal_data,omitempty"`
}
