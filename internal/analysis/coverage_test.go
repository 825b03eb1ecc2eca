package analysis_test

import "testing"

func TestControlCoverage(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.ControlCoverage([]string{"AC-1", "ac-1", "AC-2", "au-2"})
	if result.TotalControls != 4 {
		t.Errorf("total = %d, want 4", result.TotalControls)
	}
	// Case-insensitive duplicates count once.
	if result.ValidControls != 3 {
		t.Errorf("valid = %d, want 3", result.ValidControls)
	}

	ac := result.Families["AC"]
	if ac.Covered != 2 || ac.Total != 16 {
		t.Errorf("AC coverage = %+v", ac)
	}
	if ac.Percentage != 12.5 {
		t.Errorf("AC percentage = %v, want 12.5", ac.Percentage)
	}
	au := result.Families["AU"]
	if au.Covered != 1 || au.Total != 9 {
		t.Errorf("AU coverage = %+v", au)
	}
}

func TestControlCoverageUnknownIDs(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.ControlCoverage([]string{"ZZ-99", "AC-1"})
	if result.ValidControls != 1 {
		t.Errorf("valid = %d, want 1", result.ValidControls)
	}
	if len(result.Unknown) != 1 || result.Unknown[0] != "ZZ-99" {
		t.Errorf("unknown = %v", result.Unknown)
	}
}

func TestControlCoverageEmpty(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.ControlCoverage(nil)
	if result.TotalControls != 0 || result.ValidControls != 0 || len(result.Families) != 0 {
		t.Errorf("empty input should yield empty coverage, got %+v", result)
	}
}
