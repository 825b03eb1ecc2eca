package agent

import (
	"fmt"

	"github.com/ethanolivertroy/nist-grc/internal/analysis"
	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/framework"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// Toolset binds the catalog engine to the agent tools. One Toolset is
// shared by all tools; the store is immutable so concurrent tool calls
// need no locking.
type Toolset struct {
	store    *catalog.Store
	analyzer *analysis.Analyzer
	mapper   *framework.Mapper
}

// NewToolset wires a loaded catalog store into the analysis and framework
// layers.
func NewToolset(store *catalog.Store) *Toolset {
	analyzer := analysis.New(store)
	return &Toolset{
		store:    store,
		analyzer: analyzer,
		mapper:   framework.New(store, analyzer),
	}
}

func (t *Toolset) ensureReady() error {
	if t == nil || t.store == nil {
		return fmt.Errorf("%w: catalog data has not been loaded", catalog.ErrNotInitialized)
	}
	return nil
}

// --- Catalog Tool Input/Output Types ---

// ControlSummary is a condensed view of a control for list results.
type ControlSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Family string `json:"family"`
}

func summarize(c catalog.Control) ControlSummary {
	return ControlSummary{ID: c.ID, Title: c.Title, Family: c.Family}
}

// ListControlsParams for list_controls tool
type ListControlsParams struct {
	Family string `json:"family,omitempty" jsonschema:"Filter by two-letter family code (e.g. AC, SI)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default 20)"`
}

// ListControlsResult for list_controls tool
type ListControlsResult struct {
	Count    int              `json:"count"`
	Total    int              `json:"total"`
	Controls []ControlSummary `json:"controls"`
}

// GetControlParams for get_control tool
type GetControlParams struct {
	ControlID string `json:"control_id" jsonschema:"Control ID to look up (e.g. AC-2, AC-2(1), or OSCAL form ac-2.1)"`
}

// GetControlResult for get_control tool
type GetControlResult struct {
	Found      bool     `json:"found"`
	ID         string   `json:"id,omitempty"`
	Title      string   `json:"title,omitempty"`
	Family     string   `json:"family,omitempty"`
	FamilyName string   `json:"family_name,omitempty"`
	Class      string   `json:"class,omitempty"`
	Statement  string   `json:"statement,omitempty"`
	Guidance   string   `json:"guidance,omitempty"`
	Related    []string `json:"related_controls,omitempty"`
}

// SearchControlsParams for search_controls tool
type SearchControlsParams struct {
	Query  string `json:"query,omitempty" jsonschema:"Keyword to match against control titles and statements"`
	Family string `json:"family,omitempty" jsonschema:"Restrict the search to one family code (e.g. AC)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return (default 20)"`
}

// SearchHit is one search result with a statement snippet.
type SearchHit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Family  string `json:"family"`
	Snippet string `json:"snippet,omitempty"`
}

// SearchControlsResult for search_controls tool
type SearchControlsResult struct {
	Count   int         `json:"count"`
	Results []SearchHit `json:"results"`
}

// FamilyParams for get_control_family tool
type FamilyParams struct {
	Family string `json:"family" jsonschema:"Two-letter family code (e.g. AC, AU, SI)"`
}

// FamilyResult for get_control_family tool
type FamilyResult struct {
	Found       bool             `json:"found"`
	Code        string           `json:"code,omitempty"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Count       int              `json:"count,omitempty"`
	Controls    []ControlSummary `json:"controls,omitempty"`
}

// BaselineParams for get_baseline_controls tool
type BaselineParams struct {
	Baseline string `json:"baseline" jsonschema:"Baseline profile: low, moderate, or high"`
}

// BaselineResult for get_baseline_controls tool
type BaselineResult struct {
	Baseline   string   `json:"baseline"`
	Count      int      `json:"count"`
	ControlIDs []string `json:"control_ids"`
}

// --- Catalog Tool Implementations ---

func (t *Toolset) listControls(ctx tool.Context, params ListControlsParams) (ListControlsResult, error) {
	if err := t.ensureReady(); err != nil {
		return ListControlsResult{}, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var pool []catalog.Control
	if params.Family != "" {
		fam, err := t.store.Family(params.Family)
		if err != nil {
			return ListControlsResult{}, err
		}
		for _, id := range fam.ControlIDs {
			if c, err := t.store.Control(id); err == nil {
				pool = append(pool, c)
			}
		}
	} else {
		pool = t.store.Controls()
	}

	results := make([]ControlSummary, 0, limit)
	for _, c := range pool {
		if len(results) >= limit {
			break
		}
		results = append(results, summarize(c))
	}
	return ListControlsResult{Count: len(results), Total: len(pool), Controls: results}, nil
}

func (t *Toolset) getControl(ctx tool.Context, params GetControlParams) (GetControlResult, error) {
	if err := t.ensureReady(); err != nil {
		return GetControlResult{}, err
	}

	c, err := t.store.Control(params.ControlID)
	if err != nil {
		return GetControlResult{Found: false}, nil
	}
	return GetControlResult{
		Found:      true,
		ID:         c.ID,
		Title:      c.Title,
		Family:     c.Family,
		FamilyName: catalog.FamilyName(c.Family),
		Class:      c.Class,
		Statement:  c.Statement,
		Guidance:   c.Guidance,
		Related:    c.Related,
	}, nil
}

func (t *Toolset) searchControls(ctx tool.Context, params SearchControlsParams) (SearchControlsResult, error) {
	if err := t.ensureReady(); err != nil {
		return SearchControlsResult{}, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	hits, err := t.store.SearchControls(params.Query, params.Family, limit)
	if err != nil {
		return SearchControlsResult{}, err
	}

	results := make([]SearchHit, len(hits))
	for i, h := range hits {
		results[i] = SearchHit{
			ID:      h.Control.ID,
			Title:   h.Control.Title,
			Family:  h.Control.Family,
			Snippet: h.Snippet,
		}
	}
	return SearchControlsResult{Count: len(results), Results: results}, nil
}

func (t *Toolset) getControlFamily(ctx tool.Context, params FamilyParams) (FamilyResult, error) {
	if err := t.ensureReady(); err != nil {
		return FamilyResult{}, err
	}

	fam, err := t.store.Family(params.Family)
	if err != nil {
		return FamilyResult{Found: false}, nil
	}

	controls := make([]ControlSummary, 0, len(fam.ControlIDs))
	for _, id := range fam.ControlIDs {
		if c, err := t.store.Control(id); err == nil {
			controls = append(controls, summarize(c))
		}
	}
	return FamilyResult{
		Found:       true,
		Code:        fam.Code,
		Name:        fam.Name,
		Description: fam.Description,
		Count:       len(controls),
		Controls:    controls,
	}, nil
}

func (t *Toolset) getBaselineControls(ctx tool.Context, params BaselineParams) (BaselineResult, error) {
	if err := t.ensureReady(); err != nil {
		return BaselineResult{}, err
	}

	b, err := t.store.Baseline(params.Baseline)
	if err != nil {
		return BaselineResult{}, err
	}
	return BaselineResult{
		Baseline:   b.Name,
		Count:      len(b.ControlIDs),
		ControlIDs: b.ControlIDs,
	}, nil
}

// CreateTools creates the full tool registry for the agent: catalog lookup
// and search, CSF navigation, analysis, and framework mapping.
func (t *Toolset) CreateTools() ([]tool.Tool, error) {
	listTool, err := functiontool.New(
		functiontool.Config{
			Name:        "list_controls",
			Description: "List SP 800-53 controls in catalog order, optionally filtered by family code",
		},
		t.listControls,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list_controls tool: %w", err)
	}

	getTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_control",
			Description: "Get the full statement, guidance, and related controls for one SP 800-53 control",
		},
		t.getControl,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_control tool: %w", err)
	}

	searchTool, err := functiontool.New(
		functiontool.Config{
			Name:        "search_controls",
			Description: "Keyword search over control titles and statements, title matches ranked first",
		},
		t.searchControls,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search_controls tool: %w", err)
	}

	familyTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_control_family",
			Description: "Get a control family's name, description, and member controls by two-letter code",
		},
		t.getControlFamily,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_control_family tool: %w", err)
	}

	baselineTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_baseline_controls",
			Description: "List the control ids required by an SP 800-53B baseline (low, moderate, or high)",
		},
		t.getBaselineControls,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_baseline_controls tool: %w", err)
	}

	tools := []tool.Tool{listTool, getTool, searchTool, familyTool, baselineTool}

	analysisTools, err := t.createAnalysisTools()
	if err != nil {
		return nil, err
	}
	tools = append(tools, analysisTools...)

	frameworkTools, err := t.createFrameworkTools()
	if err != nil {
		return nil, err
	}
	tools = append(tools, frameworkTools...)

	return tools, nil
}
