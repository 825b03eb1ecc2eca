// Package framework translates SP 800-53 control coverage into other
// compliance frameworks' terms: SOC 2 and ISO 27001 requirement mapping,
// CMMC maturity assessment, and FedRAMP readiness.
package framework

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ethanolivertroy/nist-grc/internal/analysis"
	"github.com/ethanolivertroy/nist-grc/internal/catalog"
)

// Mapper answers cross-framework queries against one catalog snapshot.
type Mapper struct {
	store    *catalog.Store
	analyzer *analysis.Analyzer
}

// New creates a Mapper over a loaded store.
func New(store *catalog.Store, analyzer *analysis.Analyzer) *Mapper {
	return &Mapper{store: store, analyzer: analyzer}
}

// RequirementMatch is a foreign-framework requirement at least partially
// covered by the implemented set.
type RequirementMatch struct {
	Requirement        string   `json:"requirement"`
	CoveredControls    []string `json:"covered_controls"`
	TotalRequired      int      `json:"total_required"`
	CoveragePercentage float64  `json:"coverage_percentage"`
}

// RequirementGap is a requirement with no implemented controls.
type RequirementGap struct {
	Requirement      string   `json:"requirement"`
	RequiredControls []string `json:"required_controls"`
}

// MappingResult is the outcome of ComplianceMapping.
type MappingResult struct {
	Framework            string             `json:"framework"`
	TotalRequirements    int                `json:"total_requirements"`
	Matched              []RequirementMatch `json:"matched"`
	Unmatched            []RequirementGap   `json:"unmatched"`
	CompliancePercentage float64            `json:"compliance_percentage"`
	UnmatchedControls    []string           `json:"unmatched_controls"`
}

// ComplianceMapping evaluates an implemented control set against a foreign
// framework's requirement table. A requirement counts as matched when at
// least one of its controls is implemented. Unknown framework names fail
// with ErrUnsupportedFramework.
func (m *Mapper) ComplianceMapping(frameworkName string, controlIDs []string) (MappingResult, error) {
	name := strings.ToLower(strings.TrimSpace(frameworkName))
	table, ok := m.store.Framework(name)
	if !ok {
		return MappingResult{}, fmt.Errorf("%w: %q (supported: %s)",
			catalog.ErrUnsupportedFramework, frameworkName, strings.Join(m.supported(), ", "))
	}

	have := make(map[string]bool, len(controlIDs))
	for _, id := range controlIDs {
		have[catalog.NormalizeID(id)] = true
	}

	result := MappingResult{
		Framework:         name,
		TotalRequirements: len(table),
		Matched:           []RequirementMatch{},
		Unmatched:         []RequirementGap{},
	}

	mapped := make(map[string]bool)
	reqs := make([]string, 0, len(table))
	for req := range table {
		reqs = append(reqs, req)
	}
	sort.Strings(reqs)

	for _, req := range reqs {
		requiredIDs := table[req]
		var covered []string
		for _, id := range requiredIDs {
			mapped[id] = true
			if have[id] {
				covered = append(covered, id)
			}
		}
		if len(covered) > 0 {
			result.Matched = append(result.Matched, RequirementMatch{
				Requirement:        req,
				CoveredControls:    covered,
				TotalRequired:      len(requiredIDs),
				CoveragePercentage: round2(float64(len(covered)) / float64(len(requiredIDs)) * 100),
			})
		} else {
			result.Unmatched = append(result.Unmatched, RequirementGap{
				Requirement:      req,
				RequiredControls: requiredIDs,
			})
		}
	}

	if result.TotalRequirements > 0 {
		result.CompliancePercentage = round2(float64(len(result.Matched)) /
			float64(result.TotalRequirements) * 100)
	}

	for _, raw := range controlIDs {
		id := catalog.NormalizeID(raw)
		if !mapped[id] {
			result.UnmatchedControls = append(result.UnmatchedControls, id)
		}
	}
	sort.Slice(result.UnmatchedControls, func(i, j int) bool {
		return catalog.ControlIDLess(result.UnmatchedControls[i], result.UnmatchedControls[j])
	})
	return result, nil
}

func (m *Mapper) supported() []string {
	var names []string
	for _, name := range []string{"soc2", "iso27001"} {
		if _, ok := m.store.Framework(name); ok {
			names = append(names, name)
		}
	}
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
