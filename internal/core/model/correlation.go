package model

// Confidence tiers for inferred root causes.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// RootCause is an inferred causal explanation linking negative and positive
// findings, possibly across areas.
type RootCause struct {
	CauseDescription   string   `json:"cause_description"`
	AffectedAreas      []string `json:"affected_areas"`
	SupportingEvidence []string `json:"supporting_evidence"`
	Confidence         string   `json:"confidence"`
}

// CorrelationResult is the correlation engine's output. CrossAreaLinks maps an
// area name to human-readable "cause: negative + positive" strings for the
// pattern matches attributed to it.
type CorrelationResult struct {
	RootCauses     []RootCause         `json:"root_causes"`
	CrossAreaLinks map[string][]string `json:"cross_area_links"`
	Conflicts      []string            `json:"conflicts"`
}
