package framework

// FedRAMPResult is the outcome of a FedRAMP readiness assessment at one
// impact level.
type FedRAMPResult struct {
	Baseline             string   `json:"baseline"`
	ImpactLevel          string   `json:"impact_level"`
	Met                  int      `json:"met"`
	Missing              []string `json:"missing"`
	CompliancePercentage float64  `json:"compliance_percentage"`
	ReadinessLevel       string   `json:"readiness_level"`
	Pathways             []string `json:"pathways"`
}

// FedRAMPReadiness assesses readiness against the SP 800-53 baseline
// implied by the impact level (low, moderate, high). Unknown levels fail
// via the baseline lookup.
func (m *Mapper) FedRAMPReadiness(controlIDs []string, impactLevel string) (FedRAMPResult, error) {
	gap, err := m.analyzer.GapAnalysis(controlIDs, impactLevel)
	if err != nil {
		return FedRAMPResult{}, err
	}

	result := FedRAMPResult{
		Baseline:             gap.Baseline,
		ImpactLevel:          gap.Baseline,
		Met:                  gap.ImplementedCount,
		Missing:              gap.Missing,
		CompliancePercentage: gap.CompliancePercentage,
	}

	switch {
	case gap.CompliancePercentage >= 95:
		result.ReadinessLevel = "Ready for Authorization"
		result.Pathways = []string{"Priority", "General (JAB)", "Agency"}
	case gap.CompliancePercentage >= 85:
		result.ReadinessLevel = "High Readiness"
		result.Pathways = []string{"General (JAB)", "Agency"}
	case gap.CompliancePercentage >= 75:
		result.ReadinessLevel = "Medium Readiness"
		result.Pathways = []string{"Agency"}
	default:
		result.ReadinessLevel = "Low Readiness"
		result.Pathways = []string{"Not yet ready for authorization"}
	}
	return result, nil
}
