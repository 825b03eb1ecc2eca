package cmd

import (
	"fmt"
	"strings"

	"github.com/ethanolivertroy/nist-grc/internal/analysis"
	"github.com/ethanolivertroy/nist-grc/internal/report"
)

// RunReport renders the coverage and gap report for an implemented control
// set against a target baseline. Controls may be comma- or space-separated.
func RunReport(dataDir, baseline string, controls []string) error {
	ids := splitControlIDs(controls)
	if len(ids) == 0 {
		return fmt.Errorf("no implemented controls given (pass ids like AC-2,IA-2,SI-4)")
	}

	store, err := LoadStore(dataDir)
	if err != nil {
		return err
	}
	analyzer := analysis.New(store)

	cov := analyzer.ControlCoverage(ids)
	gap, err := analyzer.GapAnalysis(ids, baseline)
	if err != nil {
		return err
	}

	fmt.Println(report.Render(cov, gap, 100, 30))
	return nil
}

// splitControlIDs accepts both "AC-2,IA-2" and "AC-2 IA-2" argument forms.
func splitControlIDs(args []string) []string {
	var ids []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				ids = append(ids, part)
			}
		}
	}
	return ids
}
