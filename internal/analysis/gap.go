package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
)

// maxPriorities caps the prioritized remediation list so gap output stays
// actionable.
const maxPriorities = 10

// familyWeights ranks control families by criticality when ordering missed
// controls for remediation. Families absent from the table weigh 1. The
// exact values are tunable; relative order is what matters.
var familyWeights = map[string]int{
	"AC": 10,
	"IA": 9,
	"SC": 8,
	"SI": 8,
	"IR": 7,
	"AU": 6,
	"CM": 6,
	"CP": 5,
	"RA": 5,
	"CA": 4,
}

// FamilyGap summarizes one family's share of a gap analysis.
type FamilyGap struct {
	Required    int      `json:"required"`
	Implemented int      `json:"implemented"`
	Missing     []string `json:"missing"`
}

// PriorityControl is a missing control ranked for remediation.
type PriorityControl struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Weight int    `json:"weight"`
}

// GapResult is the outcome of comparing an implemented control set against
// a baseline.
type GapResult struct {
	Baseline             string               `json:"baseline"`
	Required             int                  `json:"required"`
	ImplementedCount     int                  `json:"implemented_count"`
	Missing              []string             `json:"missing"`
	CompliancePercentage float64              `json:"compliance_percentage"`
	Families             map[string]FamilyGap `json:"families"`
	Priorities           []PriorityControl    `json:"priorities"`
	Recommendations      []string             `json:"recommendations"`
}

// GapAnalysis computes which baseline-required controls are absent from the
// implemented set. Implemented ids unknown to the catalog are tolerated and
// count as not implemented.
func (a *Analyzer) GapAnalysis(implemented []string, baselineName string) (GapResult, error) {
	baseline, err := a.store.Baseline(baselineName)
	if err != nil {
		return GapResult{}, err
	}

	have := make(map[string]bool, len(implemented))
	for _, id := range implemented {
		have[catalog.NormalizeID(id)] = true
	}

	result := GapResult{
		Baseline: baseline.Name,
		Required: len(baseline.ControlIDs),
		Missing:  []string{},
		Families: make(map[string]FamilyGap),
	}

	for _, id := range baseline.ControlIDs {
		family := id[:2]
		fg := result.Families[family]
		fg.Required++
		if have[id] {
			fg.Implemented++
			result.ImplementedCount++
		} else {
			fg.Missing = append(fg.Missing, id)
			result.Missing = append(result.Missing, id)
		}
		result.Families[family] = fg
	}

	if result.Required == 0 {
		result.CompliancePercentage = 100
	} else {
		result.CompliancePercentage = round2(float64(result.ImplementedCount) / float64(result.Required) * 100)
	}

	result.Priorities = a.prioritize(result.Missing)
	result.Recommendations = gapRecommendations(result.Families, result.Missing)
	return result, nil
}

// prioritize orders missing controls by family criticality weight
// descending, then id ascending, capped at maxPriorities.
func (a *Analyzer) prioritize(missing []string) []PriorityControl {
	out := make([]PriorityControl, 0, len(missing))
	for _, id := range missing {
		weight := familyWeights[id[:2]]
		if weight == 0 {
			weight = 1
		}
		title := ""
		if c, err := a.store.Control(id); err == nil {
			title = c.Title
		}
		out = append(out, PriorityControl{ID: id, Title: title, Weight: weight})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return catalog.ControlIDLess(out[i].ID, out[j].ID)
	})
	if len(out) > maxPriorities {
		out = out[:maxPriorities]
	}
	return out
}

func gapRecommendations(families map[string]FamilyGap, missing []string) []string {
	var recs []string

	codes := make([]string, 0, len(families))
	for code := range families {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		fg := families[code]
		if fg.Required == 0 {
			continue
		}
		coverage := float64(fg.Implemented) / float64(fg.Required) * 100
		if coverage < 50 {
			recs = append(recs, fmt.Sprintf("Priority: implement %s family controls - only %.1f%% coverage", code, coverage))
		} else if coverage < 80 {
			recs = append(recs, fmt.Sprintf("Improve %s family controls - %.1f%% coverage", code, coverage))
		}
	}

	// The "-1" policy controls are foundational; call them out first.
	var foundational []string
	for _, id := range missing {
		if len(id) == 4 && id[2] == '-' && id[3] == '1' {
			foundational = append(foundational, id)
		}
	}
	if len(foundational) > 0 {
		sort.Strings(foundational)
		recs = append([]string{fmt.Sprintf("Critical: implement foundational controls first: %s",
			joinIDs(foundational))}, recs...)
	}
	return recs
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
