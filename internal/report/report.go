// Package report renders a terminal compliance report: per-family coverage
// as a bar chart plus a gap summary against a target baseline.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethanolivertroy/nist-grc/internal/analysis"
)

// Colors
var (
	PrimaryColor = lipgloss.Color("#7D56F4")
	SubtleColor  = lipgloss.Color("#626262")
	goodColor    = lipgloss.Color("#04B575")
	warnColor    = lipgloss.Color("#FFCC00")
	badColor     = lipgloss.Color("#FF5F56")
	critColor    = lipgloss.Color("#9B0000")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(PrimaryColor).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().Foreground(SubtleColor)
)

// coverageColor picks a bar color from a coverage percentage.
func coverageColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 80:
		return goodColor
	case pct >= 50:
		return warnColor
	default:
		return badColor
	}
}

// RenderCoverageChart renders a bar chart of per-family coverage.
func RenderCoverageChart(cov analysis.CoverageResult, width, height int) string {
	if len(cov.Families) == 0 {
		return "No coverage data available"
	}

	codes := make([]string, 0, len(cov.Families))
	for code := range cov.Families {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Control Coverage by Family"))
	b.WriteString("\n\n")

	bc := barchart.New(width-4, height-10,
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(3),
		barchart.WithBarGap(1),
	)

	var items []barchart.BarData
	for _, code := range codes {
		fc := cov.Families[code]
		color := coverageColor(fc.Percentage)
		items = append(items, barchart.BarData{
			Label: code,
			Values: []barchart.BarValue{{
				Name:  code,
				Value: fc.Percentage,
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}
	bc.PushAll(items)
	bc.Draw()

	b.WriteString(bc.View())
	b.WriteString("\n\n")

	// Legend with counts
	for _, code := range codes {
		fc := cov.Families[code]
		color := coverageColor(fc.Percentage)
		marker := lipgloss.NewStyle().Foreground(color).Render("█")
		b.WriteString(fmt.Sprintf("%s %s: %d/%d (%.1f%%)\n", marker, code, fc.Covered, fc.Total, fc.Percentage))
	}

	if len(cov.Unknown) > 0 {
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render(fmt.Sprintf("Unknown control ids ignored: %s", strings.Join(cov.Unknown, ", "))))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderGapSummary renders the gap analysis outcome: compliance percentage,
// missing controls by family, and the prioritized remediation list.
func RenderGapSummary(gap analysis.GapResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Gap Analysis - %s baseline", gap.Baseline)))
	b.WriteString("\n\n")

	pctStyle := lipgloss.NewStyle().Bold(true).Foreground(coverageColor(gap.CompliancePercentage))
	b.WriteString(pctStyle.Render(fmt.Sprintf("Compliance: %.1f%%", gap.CompliancePercentage)))
	b.WriteString(summaryStyle.Render(fmt.Sprintf("  (%d of %d required controls implemented)", gap.ImplementedCount, gap.Required)))
	b.WriteString("\n\n")

	if len(gap.Missing) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(goodColor).Render("All baseline controls implemented."))
		b.WriteString("\n")
		return b.String()
	}

	// Families with gaps, worst first
	type famGap struct {
		code string
		gap  analysis.FamilyGap
	}
	var fams []famGap
	for code, fg := range gap.Families {
		if len(fg.Missing) > 0 {
			fams = append(fams, famGap{code, fg})
		}
	}
	sort.Slice(fams, func(i, j int) bool {
		if len(fams[i].gap.Missing) != len(fams[j].gap.Missing) {
			return len(fams[i].gap.Missing) > len(fams[j].gap.Missing)
		}
		return fams[i].code < fams[j].code
	})

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Missing by family:"))
	b.WriteString("\n")
	for _, f := range fams {
		marker := lipgloss.NewStyle().Foreground(badColor).Render("█")
		b.WriteString(fmt.Sprintf("%s %s: %d missing (%s)\n",
			marker, f.code, len(f.gap.Missing), strings.Join(f.gap.Missing, ", ")))
	}
	b.WriteString("\n")

	if len(gap.Priorities) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Remediation priorities:"))
		b.WriteString("\n")
		for i, p := range gap.Priorities {
			style := lipgloss.NewStyle().Foreground(warnColor)
			if p.Weight >= 8 {
				style = lipgloss.NewStyle().Foreground(critColor).Bold(true)
			}
			b.WriteString(fmt.Sprintf("  %2d. %s\n", i+1, style.Render(fmt.Sprintf("%s - %s", p.ID, p.Title))))
		}
		b.WriteString("\n")
	}

	if len(gap.Recommendations) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Recommendations:"))
		b.WriteString("\n")
		for _, rec := range gap.Recommendations {
			b.WriteString(summaryStyle.Render("  - " + rec))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Render produces the full report: coverage chart followed by gap summary.
func Render(cov analysis.CoverageResult, gap analysis.GapResult, width, height int) string {
	var b strings.Builder
	b.WriteString(RenderCoverageChart(cov, width, height))
	b.WriteString("\n")
	b.WriteString(RenderGapSummary(gap))
	return b.String()
}
