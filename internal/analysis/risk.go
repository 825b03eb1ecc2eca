package analysis

import (
	"fmt"
	"sort"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
)

// Risk scoring constants. The score starts at a baseline budget and grows
// by a fixed penalty per missing high-criticality control, clamped to
// [0, 10]. Higher means riskier. Values are tunable constants, not ground
// truth.
const (
	riskBase    = 1.0
	riskPenalty = 0.75
	riskMax     = 10.0
)

// highCriticalityControls are the controls whose absence drives the risk
// score: authentication, access enforcement, incident response, and
// configuration management.
var highCriticalityControls = []string{
	"AC-2", "AC-3", "AC-6",
	"IA-2", "IA-5",
	"IR-4", "IR-6",
	"CM-6", "CM-8",
}

// riskAdvice maps a family to its templated recommendation when a critical
// gap falls in that family.
var riskAdvice = map[string]string{
	"AC": "Implement access control measures to prevent unauthorized access",
	"IA": "Strengthen identification and authentication of users and services",
	"IR": "Establish incident response capabilities for security events",
	"CM": "Enforce configuration management to detect unauthorized changes",
}

// CriticalGap identifies a missing high-criticality control.
type CriticalGap struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RiskResult is the output of RiskAssessment.
type RiskResult struct {
	OverallScore    float64       `json:"overall_score"` // 0 (low risk) .. 10 (high risk)
	ControlsScored  int           `json:"controls_scored"`
	CriticalGaps    []CriticalGap `json:"critical_gaps"`
	Recommendations []string      `json:"recommendations"`
}

// RiskAssessment scores the risk exposure of an implemented control set.
// Deterministic for identical input; unknown control ids are tolerated.
func (a *Analyzer) RiskAssessment(controlIDs []string) RiskResult {
	have := make(map[string]bool, len(controlIDs))
	for _, id := range controlIDs {
		have[catalog.NormalizeID(id)] = true
	}

	result := RiskResult{
		ControlsScored:  len(controlIDs),
		CriticalGaps:    []CriticalGap{},
		Recommendations: []string{},
	}

	score := riskBase
	gapFamilies := make(map[string]bool)
	for _, id := range highCriticalityControls {
		if have[id] {
			continue
		}
		score += riskPenalty
		gap := CriticalGap{ID: id}
		if c, err := a.store.Control(id); err == nil {
			gap.Title = c.Title
		}
		result.CriticalGaps = append(result.CriticalGaps, gap)
		gapFamilies[id[:2]] = true
	}
	if score > riskMax {
		score = riskMax
	}
	result.OverallScore = round2(score)

	sort.SliceStable(result.CriticalGaps, func(i, j int) bool {
		return catalog.ControlIDLess(result.CriticalGaps[i].ID, result.CriticalGaps[j].ID)
	})

	families := make([]string, 0, len(gapFamilies))
	for code := range gapFamilies {
		families = append(families, code)
	}
	sort.Strings(families)
	for _, code := range families {
		if advice, ok := riskAdvice[code]; ok {
			result.Recommendations = append(result.Recommendations, fmt.Sprintf("High risk: %s", advice))
		}
	}
	return result
}
