package framework_test

import (
	"errors"
	"testing"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/loader"
)

func TestFedRAMPReadinessTiers(t *testing.T) {
	m := newTestMapper(t)
	low := loader.Sample().Baselines["low"]

	tests := []struct {
		name          string
		implemented   []string
		wantReadiness string
		wantPathways  int
	}{
		{"complete", low, "Ready for Authorization", 3},
		{"near complete", low[:24], "High Readiness", 2},
		{"three quarters", low[:21], "Medium Readiness", 1},
		{"sparse", low[:5], "Low Readiness", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := m.FedRAMPReadiness(tt.implemented, "low")
			if err != nil {
				t.Fatalf("FedRAMPReadiness: %v", err)
			}
			if result.ReadinessLevel != tt.wantReadiness {
				t.Errorf("readiness = %q (%.1f%%), want %q",
					result.ReadinessLevel, result.CompliancePercentage, tt.wantReadiness)
			}
			if len(result.Pathways) != tt.wantPathways {
				t.Errorf("pathways = %v", result.Pathways)
			}
			if result.Missing == nil {
				t.Error("missing should be an empty list, not absent")
			}
		})
	}
}

func TestFedRAMPReadinessResultFields(t *testing.T) {
	m := newTestMapper(t)

	result, err := m.FedRAMPReadiness([]string{"AC-1", "AC-2"}, "moderate")
	if err != nil {
		t.Fatalf("FedRAMPReadiness: %v", err)
	}
	if result.Baseline != "moderate" || result.ImpactLevel != "moderate" {
		t.Errorf("baseline/impact = %q/%q", result.Baseline, result.ImpactLevel)
	}
	if result.Met != 2 {
		t.Errorf("met = %d, want 2", result.Met)
	}
	if len(result.Missing) != 49-2 {
		t.Errorf("missing = %d controls", len(result.Missing))
	}
}

func TestFedRAMPReadinessUnknownImpactLevel(t *testing.T) {
	m := newTestMapper(t)

	if _, err := m.FedRAMPReadiness(nil, "extreme"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown impact level should be ErrNotFound, got %v", err)
	}
}
