// Package catalog provides the immutable in-memory index over the NIST
// SP 800-53 control catalog, baseline profiles, the CSF 2.0 hierarchy, and
// cross-framework mapping tables. A Store is built once from parsed input
// documents and is read-only afterwards, so every query is safe for
// concurrent use.
package catalog

import "strings"

// Control is a single SP 800-53 control or control enhancement.
type Control struct {
	ID        string   `json:"id"`     // e.g. "AC-2" or "AC-2(1)"
	Title     string   `json:"title"`
	Family    string   `json:"family"` // two-letter family code, e.g. "AC"
	Class     string   `json:"class"`  // "SP800-53" or "SP800-53-enhancement"
	Statement string   `json:"statement,omitempty"`
	Guidance  string   `json:"guidance,omitempty"`
	Related   []string `json:"related,omitempty"` // linked control ids
}

// IsEnhancement reports whether the control is an enhancement of a base
// control, e.g. "AC-2(1)".
func (c Control) IsEnhancement() bool {
	return strings.Contains(c.ID, "(")
}

// BaseID returns the base control id for an enhancement ("AC-2(1)" -> "AC-2").
// For a base control it returns the id unchanged.
func (c Control) BaseID() string {
	if i := strings.Index(c.ID, "("); i > 0 {
		return c.ID[:i]
	}
	return c.ID
}

// Family groups the controls sharing a two-letter family code.
type Family struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ControlIDs  []string `json:"control_ids"`
}

// Baseline is a named required-control profile (low, moderate, high).
type Baseline struct {
	Name       string   `json:"name"`
	ControlIDs []string `json:"control_ids"`
}

// CSFFunction is a top-level CSF 2.0 function (e.g. "PR" Protect).
type CSFFunction struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Categories []CSFCategory `json:"categories"`
}

// CSFCategory is a mid-level CSF grouping (e.g. "PR.AA").
type CSFCategory struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Subcategories []CSFSubcategory `json:"subcategories"`
}

// CSFSubcategory is a CSF 2.0 outcome statement. Function and category
// context is filled in when the Store is built so search results are
// self-describing.
type CSFSubcategory struct {
	ID           string `json:"id"` // e.g. "PR.AA-01"
	Description  string `json:"description"`
	Category     string `json:"category,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	Function     string `json:"function,omitempty"`
	FunctionName string `json:"function_name,omitempty"`
}

// CSFMapping links a control to a CSF subcategory, optionally with a
// rationale explaining the relationship.
type CSFMapping struct {
	ControlID     string `json:"control_id"`
	SubcategoryID string `json:"subcategory_id"`
	Rationale     string `json:"rationale,omitempty"`
}

// CMMCLevel lists the controls required per CMMC domain at one maturity
// level. Levels are cumulative: level N also requires every domain mapping
// at levels below N.
type CMMCLevel struct {
	Level   int                 `json:"level"`
	Name    string              `json:"name"`
	Domains map[string][]string `json:"domains"` // domain code -> control ids
}

// Input holds the parsed documents the external loader supplies to Load.
// All referenced control ids must exist in Controls; Load rejects dangling
// references.
type Input struct {
	Controls    []Control
	Baselines   map[string][]string // "low"|"moderate"|"high" -> control ids
	CSF         []CSFFunction
	CSFMappings []CSFMapping
	Frameworks  map[string]map[string][]string // framework -> requirement -> control ids
	CMMCLevels  []CMMCLevel
}
