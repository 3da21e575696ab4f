package model

import "fmt"

// Severity levels assigned to areas and to the overall report.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// ThermalEvidence holds temperature readings for an area. Cold zones are the
// moisture proxy: a cold spot on an internal surface usually means evaporation.
type ThermalEvidence struct {
	ColdSpotTemp   *float64 `json:"cold_spot_temp,omitempty"`
	HotSpotTemp    *float64 `json:"hot_spot_temp,omitempty"`
	AvgTemp        *float64 `json:"avg_temp,omitempty"`
	TempDifference *float64 `json:"temp_difference,omitempty"`
	HasColdZones   bool     `json:"has_cold_zones"`
	ThermalNotes   string   `json:"thermal_notes,omitempty"`
}

// Summary renders a human-readable one-liner, "Not Available" when empty.
func (t *ThermalEvidence) Summary() string {
	if t == nil || (t.ColdSpotTemp == nil && t.HotSpotTemp == nil) {
		return "Not Available"
	}

	s := ""
	if t.ColdSpotTemp != nil {
		s += fmt.Sprintf("Cold spot: %.1f°C", *t.ColdSpotTemp)
	}
	if t.HotSpotTemp != nil {
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("Hot spot: %.1f°C", *t.HotSpotTemp)
	}
	if t.TempDifference != nil {
		s += fmt.Sprintf(", Δ%.1f°C", *t.TempDifference)
	}
	if t.HasColdZones {
		s += " (Cold zones indicate moisture presence)"
	}
	return s
}

// AreaObservation is one physical location's findings. Negative findings are
// the impacted side (issues), positive findings the exposed side (probable
// sources). Severity fields are populated by the severity engine.
type AreaObservation struct {
	AreaName         string           `json:"area_name"`
	NegativeFindings []string         `json:"negative_findings"`
	PositiveFindings []string         `json:"positive_findings"`
	ThermalEvidence  *ThermalEvidence `json:"thermal_evidence,omitempty"`
	Severity         string           `json:"severity,omitempty"`
	SeverityScore    *float64         `json:"severity_score,omitempty"`
}

func (a *AreaObservation) HasIssues() bool {
	return len(a.NegativeFindings)+len(a.PositiveFindings) > 0
}

// AllFindings returns negative followed by positive findings.
func (a *AreaObservation) AllFindings() []string {
	all := make([]string, 0, len(a.NegativeFindings)+len(a.PositiveFindings))
	all = append(all, a.NegativeFindings...)
	all = append(all, a.PositiveFindings...)
	return all
}
