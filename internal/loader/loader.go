// Package loader turns on-disk OSCAL-shaped JSON documents into the parsed
// input the catalog store consumes, and carries a built-in sample dataset
// for running without downloaded data. Fetching and schema validation of
// the source documents happen elsewhere; this package only parses.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/framework"
)

// Data file names expected under the data directory.
const (
	CatalogFile  = "sp800-53-catalog.json"
	CSFFile      = "csf-2.0.json"
	MappingsFile = "csf-mappings.json"
)

// BaselineFile returns the file name for a baseline profile
// (e.g. "sp800-53b-moderate.json").
func BaselineFile(name string) string {
	return fmt.Sprintf("sp800-53b-%s.json", name)
}

// Load reads all data documents from dir and assembles the catalog input.
// The SOC2/ISO27001 requirement tables and CMMC level tables are the
// built-in ones from the framework package.
func Load(dir string) (catalog.Input, error) {
	var in catalog.Input

	var cf catalogFile
	if err := readJSON(filepath.Join(dir, CatalogFile), &cf); err != nil {
		return in, err
	}
	in.Controls = flattenControls(cf.Catalog)

	in.Baselines = make(map[string][]string, len(catalog.BaselineNames))
	for _, name := range catalog.BaselineNames {
		var pf profileFile
		if err := readJSON(filepath.Join(dir, BaselineFile(name)), &pf); err != nil {
			return in, err
		}
		in.Baselines[name] = profileControlIDs(pf)
	}

	var csf csfFile
	if err := readJSON(filepath.Join(dir, CSFFile), &csf); err != nil {
		return in, err
	}
	in.CSF = convertCSF(csf)

	var mf mappingsFile
	if err := readJSON(filepath.Join(dir, MappingsFile), &mf); err != nil {
		return in, err
	}
	for controlID, subIDs := range mf.Mappings {
		for _, subID := range subIDs {
			in.CSFMappings = append(in.CSFMappings, catalog.CSFMapping{
				ControlID:     controlID,
				SubcategoryID: subID,
			})
		}
	}

	in.Frameworks = map[string]map[string][]string{
		"soc2":     framework.SOC2Requirements,
		"iso27001": framework.ISO27001Requirements,
	}
	in.CMMCLevels = framework.DefaultCMMCLevels()
	return in, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// flattenControls walks catalog groups and nested enhancement lists into a
// flat control slice.
func flattenControls(cat oscalCatalog) []catalog.Control {
	var out []catalog.Control
	var walk func(controls []oscalControl)
	walk = func(controls []oscalControl) {
		for _, oc := range controls {
			out = append(out, convertControl(oc))
			walk(oc.Controls)
		}
	}
	walk(cat.Controls)
	for _, group := range cat.Groups {
		walk(group.Controls)
	}
	return out
}

func convertControl(oc oscalControl) catalog.Control {
	c := catalog.Control{
		ID:    oc.ID,
		Title: oc.Title,
		Class: oc.Class,
	}
	for _, part := range oc.Parts {
		switch part.Name {
		case "statement":
			c.Statement = part.Prose
		case "guidance":
			c.Guidance = part.Prose
		}
	}
	for _, link := range oc.Links {
		if link.Rel != "related" {
			continue
		}
		// Related links use fragment hrefs, e.g. "#ac-3".
		c.Related = append(c.Related, strings.TrimPrefix(link.Href, "#"))
	}
	return c
}

func profileControlIDs(pf profileFile) []string {
	if len(pf.Profile.Imports) == 0 || len(pf.Profile.Imports[0].IncludeControls) == 0 {
		return nil
	}
	return pf.Profile.Imports[0].IncludeControls[0].WithIDs
}

func convertCSF(cf csfFile) []catalog.CSFFunction {
	out := make([]catalog.CSFFunction, 0, len(cf.Framework.Functions))
	for _, fn := range cf.Framework.Functions {
		f := catalog.CSFFunction{ID: fn.ID, Name: fn.Name}
		for _, cat := range fn.Categories {
			c := catalog.CSFCategory{ID: cat.ID, Name: cat.Name}
			for _, sub := range cat.Subcategories {
				c.Subcategories = append(c.Subcategories, catalog.CSFSubcategory{
					ID:          sub.ID,
					Description: sub.Description,
				})
			}
			f.Categories = append(f.Categories, c)
		}
		out = append(out, f)
	}
	return out
}
