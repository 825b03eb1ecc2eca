package analysis

import "github.com/ethanolivertroy/nist-grc/internal/catalog"

// FamilyCoverage reports how much of one family an implemented control set
// covers.
type FamilyCoverage struct {
	Total      int     `json:"total"`
	Covered    int     `json:"covered"`
	Percentage float64 `json:"percentage"`
}

// CoverageResult groups an implemented control set by family and divides by
// the catalog's family totals.
type CoverageResult struct {
	TotalControls int                       `json:"total_controls"`
	ValidControls int                       `json:"valid_controls"`
	Unknown       []string                  `json:"unknown_controls,omitempty"`
	Families      map[string]FamilyCoverage `json:"families"`
}

// ControlCoverage computes per-family coverage for a set of control ids.
// Ids unknown to the catalog are reported, not rejected; duplicates count
// once.
func (a *Analyzer) ControlCoverage(controlIDs []string) CoverageResult {
	result := CoverageResult{
		TotalControls: len(controlIDs),
		Families:      make(map[string]FamilyCoverage),
	}

	seen := make(map[string]bool, len(controlIDs))
	byFamily := make(map[string]int)
	for _, raw := range controlIDs {
		id := catalog.NormalizeID(raw)
		if seen[id] {
			continue
		}
		seen[id] = true
		c, err := a.store.Control(id)
		if err != nil {
			result.Unknown = append(result.Unknown, id)
			continue
		}
		result.ValidControls++
		byFamily[c.Family]++
	}

	for code, covered := range byFamily {
		family, err := a.store.Family(code)
		if err != nil {
			continue
		}
		total := len(family.ControlIDs)
		fc := FamilyCoverage{Total: total, Covered: covered}
		if total > 0 {
			fc.Percentage = round2(float64(covered) / float64(total) * 100)
		}
		result.Families[code] = fc
	}
	return result
}
