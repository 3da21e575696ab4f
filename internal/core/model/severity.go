package model

// SeverityAssessment is the severity engine's report-level output. The three
// priority lists partition exactly the areas that received a severity level.
type SeverityAssessment struct {
	OverallSeverity     string   `json:"overall_severity"`
	SeverityScore       float64  `json:"severity_score"`
	Reasoning           string   `json:"reasoning"`
	HighPriorityAreas   []string `json:"high_priority_areas"`
	MediumPriorityAreas []string `json:"medium_priority_areas"`
	LowPriorityAreas    []string `json:"low_priority_areas"`
}
