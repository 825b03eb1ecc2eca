package analysis_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethanolivertroy/nist-grc/internal/analysis"
	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/loader"
)

func newTestAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	store, err := catalog.Load(loader.Sample())
	if err != nil {
		t.Fatalf("loading sample catalog: %v", err)
	}
	return analysis.New(store)
}

func ids(controls []catalog.Control) string {
	out := make([]string, len(controls))
	for i, c := range controls {
		out[i] = c.ID
	}
	return strings.Join(out, " ")
}

func TestRelationshipsBaseControl(t *testing.T) {
	a := newTestAnalyzer(t)

	rel, err := a.Relationships("AC-2")
	if err != nil {
		t.Fatalf("Relationships: %v", err)
	}
	if rel.BaseControl != nil {
		t.Errorf("base control should not have a base, got %s", rel.BaseControl.ID)
	}
	if got := ids(rel.Enhancements); got != "AC-2(1) AC-2(2)" {
		t.Errorf("enhancements = %q", got)
	}
	// Peers exclude enhancements and the control itself, capped at 5.
	if got := ids(rel.SameFamilyPeers); got != "AC-1 AC-3 AC-5 AC-6 AC-7" {
		t.Errorf("peers = %q", got)
	}
	if len(rel.CSFMappings) != 1 || rel.CSFMappings[0].ID != "PR.AA-01" {
		t.Errorf("csf mappings = %v", rel.CSFMappings)
	}
}

func TestRelationshipsEnhancement(t *testing.T) {
	a := newTestAnalyzer(t)

	rel, err := a.Relationships("ac-2.1")
	if err != nil {
		t.Fatalf("Relationships: %v", err)
	}
	if rel.BaseControl == nil || rel.BaseControl.ID != "AC-2" {
		t.Fatalf("enhancement should resolve its base control, got %v", rel.BaseControl)
	}
	if len(rel.Enhancements) != 0 {
		t.Errorf("an enhancement has no enhancements of its own, got %v", rel.Enhancements)
	}
	if got := ids(rel.SameFamilyPeers); got != "AC-1 AC-2 AC-3 AC-5 AC-6" {
		t.Errorf("peers = %q", got)
	}
}

func TestRelationshipsUnknownControl(t *testing.T) {
	a := newTestAnalyzer(t)

	if _, err := a.Relationships("ZZ-99"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown control should be ErrNotFound, got %v", err)
	}
}

func TestCSFMappingsUnmappedControl(t *testing.T) {
	a := newTestAnalyzer(t)

	// AU-1 exists but has no CSF mapping; that is empty, not an error.
	subs, err := a.CSFMappings("AU-1")
	if err != nil {
		t.Fatalf("CSFMappings: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("unmapped control should yield no subcategories, got %v", subs)
	}

	if _, err := a.CSFMappings("ZZ-99"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown control should be ErrNotFound, got %v", err)
	}
}

func TestControlsForSubcategory(t *testing.T) {
	a := newTestAnalyzer(t)

	controls, err := a.ControlsForSubcategory("pr.aa-01")
	if err != nil {
		t.Fatalf("ControlsForSubcategory: %v", err)
	}
	if got := ids(controls); got != "AC-2 IA-2 IA-5" {
		t.Errorf("mapped controls = %q", got)
	}

	if _, err := a.ControlsForSubcategory("XX.YY-99"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown subcategory should be ErrNotFound, got %v", err)
	}
}
