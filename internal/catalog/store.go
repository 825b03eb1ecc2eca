package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BaselineNames are the recognized baseline profiles, in increasing impact
// order. Membership is monotonic: each baseline is a superset of the one
// before it.
var BaselineNames = []string{"low", "moderate", "high"}

// Store is the validated, indexed catalog snapshot. It is immutable after
// Load; all methods are pure reads.
type Store struct {
	controls    map[string]Control
	order       []string // control ids in catalog order
	families    map[string]Family
	familyOrder []string
	baselines   map[string]Baseline

	functions   []CSFFunction
	subcats     map[string]CSFSubcategory
	subcatOrder []string

	csfByControl     map[string][]CSFMapping
	controlsBySubcat map[string][]string

	frameworks map[string]map[string][]string
	cmmc       []CMMCLevel
}

// Load validates the input documents and builds a Store. Any dangling
// control reference, duplicate id, missing required field, missing baseline,
// or non-monotonic baseline fails with ErrIntegrity and no store is built.
func Load(in Input) (*Store, error) {
	s := &Store{
		controls:         make(map[string]Control, len(in.Controls)),
		families:         make(map[string]Family),
		baselines:        make(map[string]Baseline, len(BaselineNames)),
		subcats:          make(map[string]CSFSubcategory),
		csfByControl:     make(map[string][]CSFMapping),
		controlsBySubcat: make(map[string][]string),
		frameworks:       make(map[string]map[string][]string, len(in.Frameworks)),
	}

	familyIDs := make(map[string][]string)
	for _, c := range in.Controls {
		c.ID = NormalizeID(c.ID)
		if c.ID == "" || c.Title == "" {
			return nil, fmt.Errorf("%w: control with empty id or title", ErrIntegrity)
		}
		fam, _, _, ok := parseControlID(c.ID)
		if !ok {
			return nil, fmt.Errorf("%w: malformed control id %q", ErrIntegrity, c.ID)
		}
		if _, dup := s.controls[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate control id %s", ErrIntegrity, c.ID)
		}
		c.Family = fam
		if c.Class == "" {
			if c.IsEnhancement() {
				c.Class = "SP800-53-enhancement"
			} else {
				c.Class = "SP800-53"
			}
		}
		s.controls[c.ID] = c
		s.order = append(s.order, c.ID)
		familyIDs[fam] = append(familyIDs[fam], c.ID)
	}
	sort.Slice(s.order, func(i, j int) bool { return ControlIDLess(s.order[i], s.order[j]) })

	// Related-control links must resolve within the catalog.
	for _, id := range s.order {
		for _, rel := range s.controls[id].Related {
			if _, ok := s.controls[NormalizeID(rel)]; !ok {
				return nil, fmt.Errorf("%w: control %s links to unknown control %s", ErrIntegrity, id, rel)
			}
		}
	}

	for code, ids := range familyIDs {
		sort.Slice(ids, func(i, j int) bool { return ControlIDLess(ids[i], ids[j]) })
		info := familyNames[code]
		if info.Name == "" {
			info.Name = FamilyName(code)
		}
		s.families[code] = Family{
			Code:        code,
			Name:        info.Name,
			Description: info.Description,
			ControlIDs:  ids,
		}
		s.familyOrder = append(s.familyOrder, code)
	}
	sort.Strings(s.familyOrder)

	if err := s.loadBaselines(in.Baselines); err != nil {
		return nil, err
	}
	if err := s.loadCSF(in.CSF, in.CSFMappings); err != nil {
		return nil, err
	}
	if err := s.loadFrameworks(in.Frameworks, in.CMMCLevels); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadBaselines(baselines map[string][]string) error {
	for _, name := range BaselineNames {
		ids, ok := baselines[name]
		if !ok {
			return fmt.Errorf("%w: baseline %q missing", ErrIntegrity, name)
		}
		normalized := make([]string, 0, len(ids))
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			id = NormalizeID(id)
			if _, ok := s.controls[id]; !ok {
				return fmt.Errorf("%w: baseline %s references unknown control %s", ErrIntegrity, name, id)
			}
			if !seen[id] {
				seen[id] = true
				normalized = append(normalized, id)
			}
		}
		sort.Slice(normalized, func(i, j int) bool { return ControlIDLess(normalized[i], normalized[j]) })
		s.baselines[name] = Baseline{Name: name, ControlIDs: normalized}
	}

	// low ⊆ moderate ⊆ high
	for i := 1; i < len(BaselineNames); i++ {
		lower, higher := s.baselines[BaselineNames[i-1]], s.baselines[BaselineNames[i]]
		in := make(map[string]bool, len(higher.ControlIDs))
		for _, id := range higher.ControlIDs {
			in[id] = true
		}
		for _, id := range lower.ControlIDs {
			if !in[id] {
				return fmt.Errorf("%w: baseline %s is missing %s required by baseline %s",
					ErrIntegrity, higher.Name, id, lower.Name)
			}
		}
	}
	return nil
}

func (s *Store) loadCSF(functions []CSFFunction, mappings []CSFMapping) error {
	s.functions = functions
	for _, fn := range functions {
		for _, cat := range fn.Categories {
			for _, sub := range cat.Subcategories {
				if sub.ID == "" {
					return fmt.Errorf("%w: CSF subcategory with empty id in category %s", ErrIntegrity, cat.ID)
				}
				if _, dup := s.subcats[sub.ID]; dup {
					return fmt.Errorf("%w: duplicate CSF subcategory id %s", ErrIntegrity, sub.ID)
				}
				sub.Category = cat.ID
				sub.CategoryName = cat.Name
				sub.Function = fn.ID
				sub.FunctionName = fn.Name
				s.subcats[sub.ID] = sub
				s.subcatOrder = append(s.subcatOrder, sub.ID)
			}
		}
	}
	sort.Strings(s.subcatOrder)

	for _, m := range mappings {
		m.ControlID = NormalizeID(m.ControlID)
		if _, ok := s.controls[m.ControlID]; !ok {
			return fmt.Errorf("%w: CSF mapping references unknown control %s", ErrIntegrity, m.ControlID)
		}
		if _, ok := s.subcats[m.SubcategoryID]; !ok {
			return fmt.Errorf("%w: CSF mapping references unknown subcategory %s", ErrIntegrity, m.SubcategoryID)
		}
		s.csfByControl[m.ControlID] = append(s.csfByControl[m.ControlID], m)
		s.controlsBySubcat[m.SubcategoryID] = append(s.controlsBySubcat[m.SubcategoryID], m.ControlID)
	}
	for _, ids := range s.controlsBySubcat {
		sort.Slice(ids, func(i, j int) bool { return ControlIDLess(ids[i], ids[j]) })
	}
	return nil
}

func (s *Store) loadFrameworks(frameworks map[string]map[string][]string, cmmc []CMMCLevel) error {
	for name, table := range frameworks {
		name = strings.ToLower(name)
		normalized := make(map[string][]string, len(table))
		for req, ids := range table {
			out := make([]string, len(ids))
			for i, id := range ids {
				id = NormalizeID(id)
				if _, ok := s.controls[id]; !ok {
					return fmt.Errorf("%w: %s requirement %s references unknown control %s",
						ErrIntegrity, name, req, id)
				}
				out[i] = id
			}
			normalized[req] = out
		}
		s.frameworks[name] = normalized
	}

	for _, lvl := range cmmc {
		if lvl.Level < 1 || lvl.Level > 5 {
			return fmt.Errorf("%w: CMMC level %d out of range", ErrIntegrity, lvl.Level)
		}
		for domain, ids := range lvl.Domains {
			for _, id := range ids {
				if _, ok := s.controls[NormalizeID(id)]; !ok {
					return fmt.Errorf("%w: CMMC level %d domain %s references unknown control %s",
						ErrIntegrity, lvl.Level, domain, id)
				}
			}
		}
	}
	s.cmmc = append([]CMMCLevel(nil), cmmc...)
	sort.Slice(s.cmmc, func(i, j int) bool { return s.cmmc[i].Level < s.cmmc[j].Level })
	return nil
}

// Control looks up a control by id.
func (s *Store) Control(id string) (Control, error) {
	c, ok := s.controls[NormalizeID(id)]
	if !ok {
		return Control{}, fmt.Errorf("%w: control %s", ErrNotFound, NormalizeID(id))
	}
	return c, nil
}

// Family looks up a control family by its two-letter code.
func (s *Store) Family(code string) (Family, error) {
	f, ok := s.families[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Family{}, fmt.Errorf("%w: family %s", ErrNotFound, strings.ToUpper(code))
	}
	return f, nil
}

// Baseline looks up a baseline profile by name (low, moderate, high).
func (s *Store) Baseline(name string) (Baseline, error) {
	b, ok := s.baselines[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Baseline{}, fmt.Errorf("%w: baseline %q (expected low, moderate, or high)", ErrNotFound, name)
	}
	return b, nil
}

// Controls returns every control in catalog order.
func (s *Store) Controls() []Control {
	out := make([]Control, len(s.order))
	for i, id := range s.order {
		out[i] = s.controls[id]
	}
	return out
}

// Families returns every family in code order.
func (s *Store) Families() []Family {
	out := make([]Family, len(s.familyOrder))
	for i, code := range s.familyOrder {
		out[i] = s.families[code]
	}
	return out
}

// CSFFunctions returns the CSF 2.0 hierarchy.
func (s *Store) CSFFunctions() []CSFFunction {
	return s.functions
}

// Subcategory looks up a CSF subcategory by id.
func (s *Store) Subcategory(id string) (CSFSubcategory, error) {
	sub, ok := s.subcats[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return CSFSubcategory{}, fmt.Errorf("%w: CSF subcategory %s", ErrNotFound, strings.ToUpper(id))
	}
	return sub, nil
}

// CSFMappingsFor returns the CSF mappings for a control, empty when none
// exist. The control itself is not required to exist here; callers that
// need existence checks resolve the control first.
func (s *Store) CSFMappingsFor(controlID string) []CSFMapping {
	return s.csfByControl[NormalizeID(controlID)]
}

// ControlIDsForSubcategory returns the control ids mapped to a CSF
// subcategory, in id order. The boolean reports whether the subcategory
// exists in the hierarchy.
func (s *Store) ControlIDsForSubcategory(subcategoryID string) ([]string, bool) {
	id := strings.ToUpper(strings.TrimSpace(subcategoryID))
	if _, ok := s.subcats[id]; !ok {
		return nil, false
	}
	return s.controlsBySubcat[id], true
}

// Framework returns the requirement table for a cross-framework mapping
// (e.g. "soc2", "iso27001").
func (s *Store) Framework(name string) (map[string][]string, bool) {
	table, ok := s.frameworks[strings.ToLower(strings.TrimSpace(name))]
	return table, ok
}

// CMMCLevels returns the CMMC level tables in ascending level order.
func (s *Store) CMMCLevels() []CMMCLevel {
	return s.cmmc
}

// NormalizeID canonicalizes a control id: trimmed, upper-cased, and with
// the OSCAL dotted enhancement form rewritten to parentheses
// ("ac-2.1" -> "AC-2(1)").
func NormalizeID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	if i := strings.Index(id, "."); i > 0 && !strings.Contains(id, "(") {
		id = id[:i] + "(" + id[i+1:] + ")"
	}
	return id
}

// parseControlID splits an id like "AC-2(1)" into family, control number,
// and enhancement number (0 for base controls).
func parseControlID(id string) (family string, num, enh int, ok bool) {
	rest := id
	if i := strings.Index(rest, "("); i > 0 && strings.HasSuffix(rest, ")") {
		n, err := strconv.Atoi(rest[i+1 : len(rest)-1])
		if err != nil {
			return "", 0, 0, false
		}
		enh = n
		rest = rest[:i]
	}
	dash := strings.Index(rest, "-")
	if dash != 2 {
		return "", 0, 0, false
	}
	family = rest[:dash]
	n, err := strconv.Atoi(rest[dash+1:])
	if err != nil || n <= 0 {
		return "", 0, 0, false
	}
	return family, n, enh, true
}

// ControlIDLess orders control ids numerically within a family, with a base
// control before its enhancements ("AC-2" < "AC-2(1)" < "AC-10").
func ControlIDLess(a, b string) bool {
	fa, na, ea, oka := parseControlID(a)
	fb, nb, eb, okb := parseControlID(b)
	if !oka || !okb {
		return a < b
	}
	if fa != fb {
		return fa < fb
	}
	if na != nb {
		return na < nb
	}
	return ea < eb
}
