package analysis

import (
	"fmt"
	"strings"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
)

// maxPeers caps the same-family peer list so relationship results stay
// readable for large families.
const maxPeers = 5

// Relationships describes how a control relates to the rest of the catalog.
type Relationships struct {
	Control         catalog.Control          `json:"control"`
	BaseControl     *catalog.Control         `json:"base_control,omitempty"`
	Enhancements    []catalog.Control        `json:"enhancements"`
	SameFamilyPeers []catalog.Control        `json:"same_family_peers"`
	CSFMappings     []catalog.CSFSubcategory `json:"csf_mappings"`
}

// Relationships resolves the enhancement/base relation, same-family peers,
// and CSF mappings for a control.
func (a *Analyzer) Relationships(controlID string) (Relationships, error) {
	ctrl, err := a.store.Control(controlID)
	if err != nil {
		return Relationships{}, err
	}

	rel := Relationships{
		Control:         ctrl,
		Enhancements:    []catalog.Control{},
		SameFamilyPeers: []catalog.Control{},
	}

	if ctrl.IsEnhancement() {
		if base, err := a.store.Control(ctrl.BaseID()); err == nil {
			rel.BaseControl = &base
		}
	}

	prefix := ctrl.BaseID() + "("
	family, _ := a.store.Family(ctrl.Family)
	for _, id := range family.ControlIDs {
		if id == ctrl.ID {
			continue
		}
		peer, err := a.store.Control(id)
		if err != nil {
			continue
		}
		if strings.HasPrefix(id, prefix) && !ctrl.IsEnhancement() {
			rel.Enhancements = append(rel.Enhancements, peer)
			continue
		}
		if !peer.IsEnhancement() && len(rel.SameFamilyPeers) < maxPeers {
			rel.SameFamilyPeers = append(rel.SameFamilyPeers, peer)
		}
	}

	subs, err := a.CSFMappings(ctrl.ID)
	if err != nil {
		return Relationships{}, err
	}
	rel.CSFMappings = subs
	return rel, nil
}

// CSFMappings returns the CSF subcategories mapped to a control. A control
// with no mappings yields an empty slice, not an error.
func (a *Analyzer) CSFMappings(controlID string) ([]catalog.CSFSubcategory, error) {
	if _, err := a.store.Control(controlID); err != nil {
		return nil, err
	}
	mappings := a.store.CSFMappingsFor(controlID)
	subs := make([]catalog.CSFSubcategory, 0, len(mappings))
	for _, m := range mappings {
		sub, err := a.store.Subcategory(m.SubcategoryID)
		if err != nil {
			continue // validated at load, cannot happen
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// ControlsForSubcategory is the inverse lookup: the controls mapped to a
// CSF subcategory. An unknown subcategory id is an error; a known one with
// no mapped controls returns an empty slice.
func (a *Analyzer) ControlsForSubcategory(subcategoryID string) ([]catalog.Control, error) {
	ids, ok := a.store.ControlIDsForSubcategory(subcategoryID)
	if !ok {
		return nil, fmt.Errorf("%w: CSF subcategory %s", catalog.ErrNotFound, strings.ToUpper(subcategoryID))
	}
	controls := make([]catalog.Control, 0, len(ids))
	for _, id := range ids {
		if c, err := a.store.Control(id); err == nil {
			controls = append(controls, c)
		}
	}
	return controls, nil
}
