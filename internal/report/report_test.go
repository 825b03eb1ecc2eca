package report

import (
	"strings"
	"testing"

	"github.com/ethanolivertroy/nist-grc/internal/analysis"
	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/loader"
)

func newAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	store, err := catalog.Load(loader.Sample())
	if err != nil {
		t.Fatalf("loading sample catalog: %v", err)
	}
	return analysis.New(store)
}

func TestRenderCoverageChart(t *testing.T) {
	a := newAnalyzer(t)
	cov := a.ControlCoverage([]string{"AC-1", "AC-2", "AC-3", "IA-2", "ZZ-99"})

	out := RenderCoverageChart(cov, 80, 24)

	if !strings.Contains(out, "Control Coverage by Family") {
		t.Error("chart should include the title")
	}
	if !strings.Contains(out, "AC:") {
		t.Error("legend should list the AC family")
	}
	if !strings.Contains(out, "ZZ-99") {
		t.Error("unknown ids should be reported")
	}
}

func TestRenderCoverageChartEmpty(t *testing.T) {
	a := newAnalyzer(t)
	cov := a.ControlCoverage(nil)

	out := RenderCoverageChart(cov, 80, 24)
	if !strings.Contains(out, "No coverage data") {
		t.Errorf("empty coverage should render a placeholder, got: %s", out)
	}
}

func TestRenderGapSummary(t *testing.T) {
	a := newAnalyzer(t)
	gap, err := a.GapAnalysis([]string{"AC-1", "AC-2", "AC-3"}, "low")
	if err != nil {
		t.Fatalf("gap analysis: %v", err)
	}

	out := RenderGapSummary(gap)

	if !strings.Contains(out, "low baseline") {
		t.Error("summary should name the baseline")
	}
	if !strings.Contains(out, "Compliance:") {
		t.Error("summary should show the compliance percentage")
	}
	if !strings.Contains(out, "Missing by family:") {
		t.Error("summary should break missing controls down by family")
	}
	if !strings.Contains(out, "Remediation priorities:") {
		t.Error("summary should list remediation priorities")
	}
}

func TestRenderGapSummaryComplete(t *testing.T) {
	a := newAnalyzer(t)

	store, err := catalog.Load(loader.Sample())
	if err != nil {
		t.Fatalf("loading sample catalog: %v", err)
	}
	low, err := store.Baseline("low")
	if err != nil {
		t.Fatalf("baseline lookup: %v", err)
	}

	gap, err := a.GapAnalysis(low.ControlIDs, "low")
	if err != nil {
		t.Fatalf("gap analysis: %v", err)
	}

	out := RenderGapSummary(gap)
	if !strings.Contains(out, "All baseline controls implemented.") {
		t.Errorf("complete implementation should render success line, got:\n%s", out)
	}
}

func TestRenderCombined(t *testing.T) {
	a := newAnalyzer(t)
	ids := []string{"AC-1", "AC-2", "IA-2", "SI-2"}

	cov := a.ControlCoverage(ids)
	gap, err := a.GapAnalysis(ids, "moderate")
	if err != nil {
		t.Fatalf("gap analysis: %v", err)
	}

	out := Render(cov, gap, 80, 24)
	if !strings.Contains(out, "Control Coverage by Family") || !strings.Contains(out, "Gap Analysis") {
		t.Error("combined report should include both sections")
	}
}
