package analysis_test

import (
	"strings"
	"testing"
)

// criticalControls mirrors the high-criticality set the risk score is
// built from.
var criticalControls = []string{
	"AC-2", "AC-3", "AC-6",
	"IA-2", "IA-5",
	"IR-4", "IR-6",
	"CM-6", "CM-8",
}

func TestRiskAssessmentAllCriticalPresent(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.RiskAssessment(criticalControls)
	if result.OverallScore != 1 {
		t.Errorf("score = %v, want the 1.0 floor", result.OverallScore)
	}
	if len(result.CriticalGaps) != 0 {
		t.Errorf("critical gaps = %v, want none", result.CriticalGaps)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("recommendations = %v, want none", result.Recommendations)
	}
	if result.ControlsScored != len(criticalControls) {
		t.Errorf("controls scored = %d", result.ControlsScored)
	}
}

func TestRiskAssessmentNoControls(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.RiskAssessment(nil)
	// 1.0 base plus 0.75 per missing critical control, nine of them.
	if result.OverallScore != 7.75 {
		t.Errorf("score = %v, want 7.75", result.OverallScore)
	}
	if len(result.CriticalGaps) != len(criticalControls) {
		t.Fatalf("critical gaps = %d, want %d", len(result.CriticalGaps), len(criticalControls))
	}
	// Gaps sort by id; titles resolve from the catalog.
	if result.CriticalGaps[0].ID != "AC-2" || result.CriticalGaps[0].Title != "Account Management" {
		t.Errorf("first gap = %+v", result.CriticalGaps[0])
	}

	// One recommendation per affected family, AC/CM/IA/IR, in order.
	if len(result.Recommendations) != 4 {
		t.Fatalf("recommendations = %v", result.Recommendations)
	}
	for _, rec := range result.Recommendations {
		if !strings.HasPrefix(rec, "High risk:") {
			t.Errorf("recommendation missing prefix: %q", rec)
		}
	}
	if !strings.Contains(result.Recommendations[0], "access control") {
		t.Errorf("first recommendation should cover AC: %q", result.Recommendations[0])
	}
}

func TestRiskAssessmentNormalizesIDs(t *testing.T) {
	a := newTestAnalyzer(t)

	full := a.RiskAssessment(nil)
	partial := a.RiskAssessment([]string{"ac-2"})
	if want := full.OverallScore - 0.75; partial.OverallScore != want {
		t.Errorf("score = %v, want %v", partial.OverallScore, want)
	}
	for _, gap := range partial.CriticalGaps {
		if gap.ID == "AC-2" {
			t.Error("implemented ac-2 should not be a critical gap")
		}
	}
}
