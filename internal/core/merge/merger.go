package merge

import (
	"math"
	"sort"
	"strings"

	"github.com/inspectech/ddr/internal/core/common"
	"github.com/inspectech/ddr/internal/core/model"
)

// Positional qualifiers stripped when deriving the base area name:
// "Hall Skirting" and "Hall Ceiling" both collapse to "Hall".
var baseNameQualifiers = []string{
	"skirting", "ceiling", "wall", "floor", "corner", "external", "internal",
}

// Merger consolidates loosely-named area records into one canonical record per
// physical location.
type Merger struct{}

func NewMerger() *Merger {
	return &Merger{}
}

// MergeAreas groups areas by base name and merges each multi-member group.
// Output is sorted by area name for deterministic downstream iteration.
func (m *Merger) MergeAreas(areas []*model.AreaObservation) []*model.AreaObservation {
	groups := make(map[string][]*model.AreaObservation)
	var order []string

	for _, area := range areas {
		base := BaseName(area.AreaName)
		if _, ok := groups[base]; !ok {
			order = append(order, base)
		}
		groups[base] = append(groups[base], area)
	}

	merged := make([]*model.AreaObservation, 0, len(order))
	for _, base := range order {
		group := groups[base]
		if len(group) == 1 {
			merged = append(merged, group[0])
			continue
		}
		merged = append(merged, mergeGroup(base, group))
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].AreaName < merged[j].AreaName
	})
	return merged
}

// BaseName strips positional qualifiers from a raw area name, collapses
// whitespace and title-cases the remainder. A name made up entirely of
// qualifiers ("External Wall") keeps its full title-cased form.
func BaseName(name string) string {
	base := strings.ToLower(name)
	for _, q := range baseNameQualifiers {
		base = strings.ReplaceAll(base, q, "")
	}
	words := strings.Fields(base)
	if len(words) == 0 {
		words = strings.Fields(strings.ToLower(name))
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func mergeGroup(baseName string, group []*model.AreaObservation) *model.AreaObservation {
	merged := &model.AreaObservation{AreaName: baseName}

	negatives := common.NewOrderedSet()
	positives := common.NewOrderedSet()
	var thermals []*model.ThermalEvidence

	for _, obs := range group {
		for _, f := range obs.NegativeFindings {
			negatives.Add(f)
		}
		for _, f := range obs.PositiveFindings {
			positives.Add(f)
		}
		if obs.ThermalEvidence != nil {
			thermals = append(thermals, obs.ThermalEvidence)
		}
	}

	merged.NegativeFindings = negatives.Values()
	merged.PositiveFindings = positives.Values()
	merged.ThermalEvidence = mergeThermal(thermals)

	return merged
}

// mergeThermal applies the most-extreme-wins policy: minimum cold spot,
// maximum hot spot, differential and average recomputed from the merged
// extremes.
func mergeThermal(evidences []*model.ThermalEvidence) *model.ThermalEvidence {
	if len(evidences) == 0 {
		return nil
	}

	merged := &model.ThermalEvidence{}

	for _, ev := range evidences {
		if ev.ColdSpotTemp != nil {
			if merged.ColdSpotTemp == nil || *ev.ColdSpotTemp < *merged.ColdSpotTemp {
				v := *ev.ColdSpotTemp
				merged.ColdSpotTemp = &v
			}
			merged.HasColdZones = true
		}
		if ev.HotSpotTemp != nil {
			if merged.HotSpotTemp == nil || *ev.HotSpotTemp > *merged.HotSpotTemp {
				v := *ev.HotSpotTemp
				merged.HotSpotTemp = &v
			}
		}
		if ev.HasColdZones {
			merged.HasColdZones = true
		}
	}

	if merged.ColdSpotTemp != nil && merged.HotSpotTemp != nil {
		diff := round1(*merged.HotSpotTemp - *merged.ColdSpotTemp)
		avg := round1((*merged.HotSpotTemp + *merged.ColdSpotTemp) / 2)
		merged.TempDifference = &diff
		merged.AvgTemp = &avg
	}

	return merged
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
