package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
)

const testCatalogJSON = `{
  "catalog": {
    "groups": [
      {
        "id": "ac",
        "title": "Access Control",
        "controls": [
          {
            "id": "ac-1",
            "title": "Policy and Procedures",
            "class": "SP800-53",
            "parts": [
              {"name": "statement", "prose": "Develop access control policy."},
              {"name": "guidance", "prose": "Policy drives the rest of the family."}
            ]
          },
          {
            "id": "ac-2",
            "title": "Account Management",
            "parts": [{"name": "statement", "prose": "Manage system accounts."}],
            "links": [
              {"href": "#ia-2", "rel": "related"},
              {"href": "#ref-citation", "rel": "reference"}
            ],
            "controls": [
              {
                "id": "ac-2.1",
                "title": "Automated System Account Management",
                "parts": [{"name": "statement", "prose": "Automate account management."}]
              }
            ]
          }
        ]
      },
      {
        "id": "ia",
        "title": "Identification and Authentication",
        "controls": [
          {
            "id": "ia-2",
            "title": "Identification and Authentication",
            "parts": [{"name": "statement", "prose": "Uniquely identify users."}]
          }
        ]
      }
    ]
  }
}`

const testCSFJSON = `{
  "framework": {
    "functions": [
      {
        "id": "PR",
        "name": "Protect",
        "categories": [
          {
            "id": "PR.AA",
            "name": "Identity Management, Authentication, and Access Control",
            "subcategories": [
              {"id": "PR.AA-01", "description": "Identities and credentials are managed."}
            ]
          }
        ]
      }
    ]
  }
}`

const testMappingsJSON = `{
  "mappings": {
    "ac-2": ["PR.AA-01"],
    "ia-2": ["PR.AA-01"]
  }
}`

func profileJSON(ids ...string) string {
	return `{"profile": {"imports": [{"include-controls": [{"with-ids": ["` +
		strings.Join(ids, `", "`) + `"]}]}]}}`
}

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		CatalogFile:              testCatalogJSON,
		CSFFile:                  testCSFJSON,
		MappingsFile:             testMappingsJSON,
		BaselineFile("low"):      profileJSON("ac-1", "ac-2"),
		BaselineFile("moderate"): profileJSON("ac-1", "ac-2", "ac-2.1", "ia-2"),
		BaselineFile("high"):     profileJSON("ac-1", "ac-2", "ac-2.1", "ia-2"),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadParsesDocuments(t *testing.T) {
	dir := writeTestData(t)

	in, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Nested enhancements flatten into the control list.
	if len(in.Controls) != 4 {
		t.Fatalf("controls = %d, want 4", len(in.Controls))
	}

	byID := make(map[string]catalog.Control, len(in.Controls))
	for _, c := range in.Controls {
		byID[c.ID] = c
	}
	ac1 := byID["ac-1"]
	if ac1.Statement != "Develop access control policy." {
		t.Errorf("statement = %q", ac1.Statement)
	}
	if ac1.Guidance != "Policy drives the rest of the family." {
		t.Errorf("guidance = %q", ac1.Guidance)
	}

	// Only "related" links survive, with the fragment marker stripped.
	ac2 := byID["ac-2"]
	if len(ac2.Related) != 1 || ac2.Related[0] != "ia-2" {
		t.Errorf("related = %v", ac2.Related)
	}

	if got := len(in.Baselines["low"]); got != 2 {
		t.Errorf("low baseline = %d ids", got)
	}
	if len(in.CSF) != 1 || in.CSF[0].ID != "PR" {
		t.Errorf("csf = %v", in.CSF)
	}
	if len(in.CSFMappings) != 2 {
		t.Errorf("csf mappings = %v", in.CSFMappings)
	}
	if in.Frameworks["soc2"] == nil || in.Frameworks["iso27001"] == nil {
		t.Error("built-in framework tables should be attached")
	}
	if len(in.CMMCLevels) != 5 {
		t.Errorf("cmmc levels = %d", len(in.CMMCLevels))
	}
}

func TestLoadRoundTripsThroughCatalog(t *testing.T) {
	dir := writeTestData(t)

	in, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The built-in framework tables reference controls beyond this small
	// fixture; the store must see only fixture-resolvable tables.
	in.Frameworks = nil
	in.CMMCLevels = nil

	store, err := catalog.Load(in)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}

	c, err := store.Control("AC-2(1)")
	if err != nil {
		t.Fatalf("Control: %v", err)
	}
	if !c.IsEnhancement() || c.BaseID() != "AC-2" {
		t.Errorf("AC-2(1) = %+v", c)
	}

	b, err := store.Baseline("moderate")
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if got := strings.Join(b.ControlIDs, " "); got != "AC-1 AC-2 AC-2(1) IA-2" {
		t.Errorf("moderate baseline = %q", got)
	}

	ids, ok := store.ControlIDsForSubcategory("PR.AA-01")
	if !ok || strings.Join(ids, " ") != "AC-2 IA-2" {
		t.Errorf("mapped controls = %v (ok=%v)", ids, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected an error for an empty data directory")
	}
	if !strings.Contains(err.Error(), CatalogFile) {
		t.Errorf("error should name the missing file: %v", err)
	}
}

func TestSampleLoadsClean(t *testing.T) {
	store, err := catalog.Load(Sample())
	if err != nil {
		t.Fatalf("the built-in sample must pass catalog validation: %v", err)
	}

	if got := len(store.Controls()); got != 51 {
		t.Errorf("sample controls = %d", got)
	}
	for _, name := range catalog.BaselineNames {
		if _, err := store.Baseline(name); err != nil {
			t.Errorf("Baseline(%s): %v", name, err)
		}
	}
	if _, ok := store.Framework("soc2"); !ok {
		t.Error("sample should carry the soc2 table")
	}
	if len(store.CMMCLevels()) != 5 {
		t.Error("sample should carry all five CMMC levels")
	}
}
