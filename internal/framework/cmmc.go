package framework

import (
	"fmt"
	"sort"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
)

// DefaultCMMCLevels returns the built-in CMMC maturity tables: per level,
// the SP 800-53 controls required in each practice domain. Levels are
// cumulative.
func DefaultCMMCLevels() []catalog.CMMCLevel {
	return []catalog.CMMCLevel{
		{
			Level: 1,
			Name:  "Basic Cyber Hygiene",
			Domains: map[string][]string{
				"AC": {"AC-2", "AC-3"},
				"IA": {"IA-2"},
				"SI": {"SI-2"},
			},
		},
		{
			Level: 2,
			Name:  "Intermediate Cyber Hygiene",
			Domains: map[string][]string{
				"AC": {"AC-5", "AC-6"},
				"AU": {"AU-2", "AU-3"},
				"CM": {"CM-2", "CM-6"},
			},
		},
		{
			Level: 3,
			Name:  "Good Cyber Hygiene",
			Domains: map[string][]string{
				"IR": {"IR-4", "IR-6"},
				"SC": {"SC-7"},
				"SI": {"SI-3", "SI-4"},
			},
		},
		{
			Level: 4,
			Name:  "Proactive",
			Domains: map[string][]string{
				"AU": {"AU-6", "AU-12"},
				"CM": {"CM-3", "CM-8"},
				"IA": {"IA-5"},
			},
		},
		{
			Level: 5,
			Name:  "Advanced/Progressive",
			Domains: map[string][]string{
				"AC": {"AC-2(1)", "AC-6(1)"},
				"IR": {"IR-1"},
				"SI": {"SI-10"},
			},
		},
	}
}

// CMMCResult is the outcome of a CMMC compliance assessment.
type CMMCResult struct {
	TargetLevel         int      `json:"target_level"`
	CurrentLevel        int      `json:"current_level"`
	AchievedDomains     []string `json:"achieved_domains"`
	MissingDomains      []string `json:"missing_domains"`
	RequiredControls    int      `json:"required_controls"`
	ImplementedControls int      `json:"implemented_controls"`
	MissingControls     []string `json:"missing_controls"`
	ProgressPercentage  float64  `json:"progress_percentage"`
}

// CMMCAssessment assesses an implemented control set against a target CMMC
// level. Levels are cumulative: reaching level N requires every domain
// mapping at levels 1..N. targetLevel must be in 1..5.
func (m *Mapper) CMMCAssessment(controlIDs []string, targetLevel int) (CMMCResult, error) {
	if targetLevel < 1 || targetLevel > 5 {
		return CMMCResult{}, fmt.Errorf("%w: CMMC target level must be between 1 and 5, got %d",
			catalog.ErrInvalidArgument, targetLevel)
	}

	have := make(map[string]bool, len(controlIDs))
	for _, id := range controlIDs {
		have[catalog.NormalizeID(id)] = true
	}

	// Cumulative required controls per domain through the target level,
	// and per level for the current-level computation.
	domainRequired := make(map[string][]string)
	levelMissing := make(map[int]int)
	required := make(map[string]bool)
	for _, lvl := range m.store.CMMCLevels() {
		if lvl.Level > targetLevel {
			break
		}
		for domain, ids := range lvl.Domains {
			for _, raw := range ids {
				id := catalog.NormalizeID(raw)
				domainRequired[domain] = append(domainRequired[domain], id)
				required[id] = true
				if !have[id] {
					levelMissing[lvl.Level]++
				}
			}
		}
	}

	result := CMMCResult{
		TargetLevel:     targetLevel,
		AchievedDomains: []string{},
		MissingDomains:  []string{},
		MissingControls: []string{},
	}

	domains := make([]string, 0, len(domainRequired))
	for domain := range domainRequired {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	for _, domain := range domains {
		achieved := true
		for _, id := range domainRequired[domain] {
			if !have[id] {
				achieved = false
				break
			}
		}
		if achieved {
			result.AchievedDomains = append(result.AchievedDomains, domain)
		} else {
			result.MissingDomains = append(result.MissingDomains, domain)
		}
	}

	for id := range required {
		result.RequiredControls++
		if have[id] {
			result.ImplementedControls++
		} else {
			result.MissingControls = append(result.MissingControls, id)
		}
	}
	sort.Slice(result.MissingControls, func(i, j int) bool {
		return catalog.ControlIDLess(result.MissingControls[i], result.MissingControls[j])
	})

	// Current level: the highest level whose cumulative requirements are
	// all implemented.
	for lvl := 1; lvl <= targetLevel; lvl++ {
		if levelMissing[lvl] > 0 {
			break
		}
		result.CurrentLevel = lvl
	}

	if result.RequiredControls == 0 {
		result.ProgressPercentage = 100
	} else {
		result.ProgressPercentage = round2(float64(result.ImplementedControls) /
			float64(result.RequiredControls) * 100)
	}
	return result, nil
}
