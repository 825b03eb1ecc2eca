package agent

import (
	"fmt"

	"github.com/ethanolivertroy/nist-grc/internal/analysis"
	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// --- CSF and Analysis Tool Input/Output Types ---

// CSFFrameworkParams for get_csf_framework tool
type CSFFrameworkParams struct {
	Function string `json:"function,omitempty" jsonschema:"Restrict to one CSF function id (e.g. GV, ID, PR, DE, RS, RC)"`
}

// CSFFrameworkResult for get_csf_framework tool
type CSFFrameworkResult struct {
	Functions []catalog.CSFFunction `json:"functions"`
}

// SearchSubcategoriesParams for search_csf_subcategories tool
type SearchSubcategoriesParams struct {
	Query    string `json:"query" jsonschema:"Keyword to match against subcategory ids and descriptions"`
	Function string `json:"function,omitempty" jsonschema:"Restrict the search to one CSF function id"`
}

// SearchSubcategoriesResult for search_csf_subcategories tool
type SearchSubcategoriesResult struct {
	Count   int                      `json:"count"`
	Results []catalog.CSFSubcategory `json:"results"`
}

// ControlMappingsParams for get_control_mappings tool
type ControlMappingsParams struct {
	ControlID string `json:"control_id" jsonschema:"Control ID to map to CSF 2.0 subcategories (e.g. AC-2)"`
}

// ControlMappingsResult for get_control_mappings tool
type ControlMappingsResult struct {
	ControlID     string                   `json:"control_id"`
	Count         int                      `json:"count"`
	Subcategories []catalog.CSFSubcategory `json:"subcategories"`
}

// SubcategoryControlsParams for csf_to_controls_mapping tool
type SubcategoryControlsParams struct {
	SubcategoryID string `json:"subcategory_id" jsonschema:"CSF 2.0 subcategory id (e.g. PR.AA-01)"`
}

// SubcategoryControlsResult for csf_to_controls_mapping tool
type SubcategoryControlsResult struct {
	SubcategoryID string           `json:"subcategory_id"`
	Count         int              `json:"count"`
	Controls      []ControlSummary `json:"controls"`
}

// RelationshipsParams for control_relationships tool
type RelationshipsParams struct {
	ControlID string `json:"control_id" jsonschema:"Control ID whose related controls to resolve (e.g. AC-2 or AC-2(1))"`
}

// GapAnalysisParams for gap_analysis tool
type GapAnalysisParams struct {
	ImplementedControls []string `json:"implemented_controls" jsonschema:"Control ids the organization has implemented"`
	Baseline            string   `json:"baseline" jsonschema:"Target baseline: low, moderate, or high"`
}

// CoverageParams for analyze_control_coverage tool
type CoverageParams struct {
	ControlIDs []string `json:"control_ids" jsonschema:"Control ids to group and score by family"`
}

// RiskParams for risk_assessment_helper tool
type RiskParams struct {
	ControlIDs []string `json:"control_ids" jsonschema:"Implemented control ids to score for residual risk"`
}

// --- CSF and Analysis Tool Implementations ---

func (t *Toolset) getCSFFramework(ctx tool.Context, params CSFFrameworkParams) (CSFFrameworkResult, error) {
	if err := t.ensureReady(); err != nil {
		return CSFFrameworkResult{}, err
	}

	functions := t.store.CSFFunctions()
	if params.Function == "" {
		return CSFFrameworkResult{Functions: functions}, nil
	}
	for _, fn := range functions {
		if fn.ID == catalog.NormalizeID(params.Function) {
			return CSFFrameworkResult{Functions: []catalog.CSFFunction{fn}}, nil
		}
	}
	return CSFFrameworkResult{}, fmt.Errorf("%w: CSF function %s", catalog.ErrNotFound, params.Function)
}

func (t *Toolset) searchCSFSubcategories(ctx tool.Context, params SearchSubcategoriesParams) (SearchSubcategoriesResult, error) {
	if err := t.ensureReady(); err != nil {
		return SearchSubcategoriesResult{}, err
	}

	results := t.store.SearchSubcategories(params.Query, params.Function)
	return SearchSubcategoriesResult{Count: len(results), Results: results}, nil
}

func (t *Toolset) getControlMappings(ctx tool.Context, params ControlMappingsParams) (ControlMappingsResult, error) {
	if err := t.ensureReady(); err != nil {
		return ControlMappingsResult{}, err
	}

	subs, err := t.analyzer.CSFMappings(params.ControlID)
	if err != nil {
		return ControlMappingsResult{}, err
	}
	return ControlMappingsResult{
		ControlID:     catalog.NormalizeID(params.ControlID),
		Count:         len(subs),
		Subcategories: subs,
	}, nil
}

func (t *Toolset) csfToControlsMapping(ctx tool.Context, params SubcategoryControlsParams) (SubcategoryControlsResult, error) {
	if err := t.ensureReady(); err != nil {
		return SubcategoryControlsResult{}, err
	}

	controls, err := t.analyzer.ControlsForSubcategory(params.SubcategoryID)
	if err != nil {
		return SubcategoryControlsResult{}, err
	}

	summaries := make([]ControlSummary, len(controls))
	for i, c := range controls {
		summaries[i] = summarize(c)
	}
	return SubcategoryControlsResult{
		SubcategoryID: params.SubcategoryID,
		Count:         len(summaries),
		Controls:      summaries,
	}, nil
}

func (t *Toolset) controlRelationships(ctx tool.Context, params RelationshipsParams) (analysis.Relationships, error) {
	if err := t.ensureReady(); err != nil {
		return analysis.Relationships{}, err
	}
	return t.analyzer.Relationships(params.ControlID)
}

func (t *Toolset) gapAnalysis(ctx tool.Context, params GapAnalysisParams) (analysis.GapResult, error) {
	if err := t.ensureReady(); err != nil {
		return analysis.GapResult{}, err
	}
	return t.analyzer.GapAnalysis(params.ImplementedControls, params.Baseline)
}

func (t *Toolset) analyzeControlCoverage(ctx tool.Context, params CoverageParams) (analysis.CoverageResult, error) {
	if err := t.ensureReady(); err != nil {
		return analysis.CoverageResult{}, err
	}
	return t.analyzer.ControlCoverage(params.ControlIDs), nil
}

func (t *Toolset) riskAssessment(ctx tool.Context, params RiskParams) (analysis.RiskResult, error) {
	if err := t.ensureReady(); err != nil {
		return analysis.RiskResult{}, err
	}
	return t.analyzer.RiskAssessment(params.ControlIDs), nil
}

func (t *Toolset) createAnalysisTools() ([]tool.Tool, error) {
	csfTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_csf_framework",
			Description: "Get the CSF 2.0 function/category/subcategory hierarchy, optionally one function",
		},
		t.getCSFFramework,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_csf_framework tool: %w", err)
	}

	searchSubTool, err := functiontool.New(
		functiontool.Config{
			Name:        "search_csf_subcategories",
			Description: "Keyword search over CSF 2.0 subcategory ids and descriptions",
		},
		t.searchCSFSubcategories,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search_csf_subcategories tool: %w", err)
	}

	mappingsTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_control_mappings",
			Description: "Map an SP 800-53 control to its CSF 2.0 subcategories",
		},
		t.getControlMappings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_control_mappings tool: %w", err)
	}

	reverseTool, err := functiontool.New(
		functiontool.Config{
			Name:        "csf_to_controls_mapping",
			Description: "List the SP 800-53 controls mapped to a CSF 2.0 subcategory",
		},
		t.csfToControlsMapping,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create csf_to_controls_mapping tool: %w", err)
	}

	relationshipsTool, err := functiontool.New(
		functiontool.Config{
			Name:        "control_relationships",
			Description: "Resolve a control's base control, enhancements, same-family peers, and CSF mappings",
		},
		t.controlRelationships,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create control_relationships tool: %w", err)
	}

	gapTool, err := functiontool.New(
		functiontool.Config{
			Name:        "gap_analysis",
			Description: "Compare implemented controls against a baseline: missing controls, compliance percentage, prioritized remediation",
		},
		t.gapAnalysis,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gap_analysis tool: %w", err)
	}

	coverageTool, err := functiontool.New(
		functiontool.Config{
			Name:        "analyze_control_coverage",
			Description: "Group a control set by family and score per-family coverage against the catalog",
		},
		t.analyzeControlCoverage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyze_control_coverage tool: %w", err)
	}

	riskTool, err := functiontool.New(
		functiontool.Config{
			Name:        "risk_assessment_helper",
			Description: "Score residual risk for an implemented control set and flag missing high-criticality controls",
		},
		t.riskAssessment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create risk_assessment_helper tool: %w", err)
	}

	return []tool.Tool{
		csfTool,
		searchSubTool,
		mappingsTool,
		reverseTool,
		relationshipsTool,
		gapTool,
		coverageTool,
		riskTool,
	}, nil
}
