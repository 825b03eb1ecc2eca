package agent

import (
	"fmt"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/framework"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// --- Framework Tool Input/Output Types ---

// ComplianceMappingParams for compliance_mapping tool
type ComplianceMappingParams struct {
	Framework  string   `json:"framework" jsonschema:"Target framework: soc2 or iso27001"`
	ControlIDs []string `json:"control_ids" jsonschema:"Implemented SP 800-53 control ids"`
}

// CMMCParams for cmmc_compliance_assessment tool
type CMMCParams struct {
	ControlIDs  []string `json:"control_ids" jsonschema:"Implemented SP 800-53 control ids"`
	TargetLevel int      `json:"target_level" jsonschema:"Target CMMC maturity level, 1 through 5"`
}

// FedRAMPParams for fedramp_readiness_assessment tool
type FedRAMPParams struct {
	ControlIDs  []string `json:"control_ids" jsonschema:"Implemented SP 800-53 control ids"`
	ImpactLevel string   `json:"impact_level" jsonschema:"FedRAMP impact level: low, moderate, or high"`
}

// CMMCFrameworkParams for get_cmmc_framework tool
type CMMCFrameworkParams struct {
	Level int `json:"level,omitempty" jsonschema:"Optional maturity level filter, 1 through 5; 0 returns all levels"`
}

// CMMCLevelInfo is one maturity level with its domain requirements resolved
// to control summaries.
type CMMCLevelInfo struct {
	Level    int                         `json:"level"`
	Name     string                      `json:"name"`
	Domains  map[string][]ControlSummary `json:"domains"`
	Controls int                         `json:"controls"`
}

// CMMCFrameworkResult for get_cmmc_framework tool
type CMMCFrameworkResult struct {
	Levels []CMMCLevelInfo `json:"levels"`
}

// --- Framework Tool Implementations ---

func (t *Toolset) complianceMapping(ctx tool.Context, params ComplianceMappingParams) (framework.MappingResult, error) {
	if err := t.ensureReady(); err != nil {
		return framework.MappingResult{}, err
	}
	return t.mapper.ComplianceMapping(params.Framework, params.ControlIDs)
}

func (t *Toolset) cmmcAssessment(ctx tool.Context, params CMMCParams) (framework.CMMCResult, error) {
	if err := t.ensureReady(); err != nil {
		return framework.CMMCResult{}, err
	}
	return t.mapper.CMMCAssessment(params.ControlIDs, params.TargetLevel)
}

func (t *Toolset) fedRAMPReadiness(ctx tool.Context, params FedRAMPParams) (framework.FedRAMPResult, error) {
	if err := t.ensureReady(); err != nil {
		return framework.FedRAMPResult{}, err
	}
	return t.mapper.FedRAMPReadiness(params.ControlIDs, params.ImpactLevel)
}

func (t *Toolset) getCMMCFramework(ctx tool.Context, params CMMCFrameworkParams) (CMMCFrameworkResult, error) {
	if err := t.ensureReady(); err != nil {
		return CMMCFrameworkResult{}, err
	}
	if params.Level < 0 || params.Level > 5 {
		return CMMCFrameworkResult{}, fmt.Errorf("%w: CMMC level must be between 1 and 5, got %d",
			catalog.ErrInvalidArgument, params.Level)
	}

	result := CMMCFrameworkResult{Levels: []CMMCLevelInfo{}}
	for _, lvl := range t.store.CMMCLevels() {
		if params.Level != 0 && lvl.Level != params.Level {
			continue
		}
		info := CMMCLevelInfo{
			Level:   lvl.Level,
			Name:    lvl.Name,
			Domains: make(map[string][]ControlSummary, len(lvl.Domains)),
		}
		for domain, ids := range lvl.Domains {
			summaries := make([]ControlSummary, 0, len(ids))
			for _, id := range ids {
				if c, err := t.store.Control(id); err == nil {
					summaries = append(summaries, summarize(c))
				}
			}
			info.Domains[domain] = summaries
			info.Controls += len(summaries)
		}
		result.Levels = append(result.Levels, info)
	}
	if params.Level != 0 && len(result.Levels) == 0 {
		return CMMCFrameworkResult{}, fmt.Errorf("%w: CMMC level %d", catalog.ErrNotFound, params.Level)
	}
	return result, nil
}

func (t *Toolset) createFrameworkTools() ([]tool.Tool, error) {
	mappingTool, err := functiontool.New(
		functiontool.Config{
			Name:        "compliance_mapping",
			Description: "Evaluate implemented SP 800-53 controls against SOC 2 or ISO 27001 requirement mappings",
		},
		t.complianceMapping,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create compliance_mapping tool: %w", err)
	}

	cmmcTool, err := functiontool.New(
		functiontool.Config{
			Name:        "cmmc_compliance_assessment",
			Description: "Assess implemented controls against a cumulative CMMC maturity level, reporting current level and per-domain progress",
		},
		t.cmmcAssessment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cmmc_compliance_assessment tool: %w", err)
	}

	fedrampTool, err := functiontool.New(
		functiontool.Config{
			Name:        "fedramp_readiness_assessment",
			Description: "Assess FedRAMP authorization readiness at an impact level, with readiness tier and recommended pathways",
		},
		t.fedRAMPReadiness,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fedramp_readiness_assessment tool: %w", err)
	}

	cmmcFrameworkTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_cmmc_framework",
			Description: "List the CMMC maturity levels and their per-domain control requirements, optionally filtered to one level",
		},
		t.getCMMCFramework,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_cmmc_framework tool: %w", err)
	}

	return []tool.Tool{mappingTool, cmmcTool, fedrampTool, cmmcFrameworkTool}, nil
}
