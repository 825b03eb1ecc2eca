package catalog

import (
	"errors"
	"strings"
	"testing"
)

func searchInput() Input {
	in := testInput()
	in.Controls = append(in.Controls,
		Control{ID: "SI-4", Title: "System Monitoring", Statement: "Monitor the system to detect attacks and account misuse."},
	)
	in.Baselines["high"] = append(in.Baselines["high"], "SI-4")
	return in
}

func TestSearchControlsRanking(t *testing.T) {
	s := mustLoad(t, searchInput())

	// "account" appears in AC-2's and AC-2(1)'s titles and in SI-4's
	// statement. Title matches rank first, then id order; statement
	// matches follow.
	hits, err := s.SearchControls("account", "", 10)
	if err != nil {
		t.Fatalf("SearchControls: %v", err)
	}

	var ids []string
	for _, h := range hits {
		ids = append(ids, h.Control.ID)
	}
	want := "AC-2 AC-2(1) SI-4"
	if strings.Join(ids, " ") != want {
		t.Errorf("ranked ids = %v, want %s", ids, want)
	}
}

func TestSearchControlsFamilyFilter(t *testing.T) {
	s := mustLoad(t, searchInput())

	hits, err := s.SearchControls("account", "AC", 10)
	if err != nil {
		t.Fatalf("SearchControls: %v", err)
	}
	for _, h := range hits {
		if h.Control.Family != "AC" {
			t.Errorf("family filter leaked %s", h.Control.ID)
		}
	}
}

func TestSearchControlsEmptyQueryListsFamily(t *testing.T) {
	s := mustLoad(t, searchInput())

	hits, err := s.SearchControls("", "ac", 10)
	if err != nil {
		t.Fatalf("SearchControls: %v", err)
	}
	if len(hits) != 5 {
		t.Fatalf("expected all 5 AC controls, got %d", len(hits))
	}
	// Id order, numeric-aware
	if hits[0].Control.ID != "AC-1" || hits[4].Control.ID != "AC-10" {
		t.Errorf("family listing out of order: %s .. %s", hits[0].Control.ID, hits[4].Control.ID)
	}

	// Empty query with no family matches nothing.
	hits, err = s.SearchControls("", "", 10)
	if err != nil {
		t.Fatalf("SearchControls: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("empty query without family returned %d hits", len(hits))
	}
}

func TestSearchControlsLimit(t *testing.T) {
	s := mustLoad(t, searchInput())

	hits, err := s.SearchControls("account", "", 1)
	if err != nil {
		t.Fatalf("SearchControls: %v", err)
	}
	if len(hits) != 1 || hits[0].Control.ID != "AC-2" {
		t.Errorf("limit 1 should keep the best hit, got %v", hits)
	}

	if _, err := s.SearchControls("account", "", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("non-positive limit should be ErrInvalidArgument, got %v", err)
	}
}

func TestSearchSnippetTruncation(t *testing.T) {
	long := strings.Repeat("monitor the boundary and interior of the system ", 10)
	in := testInput()
	in.Controls = append(in.Controls, Control{ID: "SC-7", Title: "Boundary Protection", Statement: long})
	in.Baselines["high"] = append(in.Baselines["high"], "SC-7")
	s := mustLoad(t, in)

	hits, err := s.SearchControls("interior", "", 10)
	if err != nil {
		t.Fatalf("SearchControls: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	snippet := hits[0].Snippet
	if !strings.HasSuffix(snippet, "...") {
		t.Errorf("long statements should be truncated with ellipsis: %q", snippet)
	}
	if got := len([]rune(strings.TrimSuffix(snippet, "..."))); got != snippetLen {
		t.Errorf("snippet length = %d runes, want %d", got, snippetLen)
	}
}

func TestSearchSubcategories(t *testing.T) {
	s := mustLoad(t, testInput())

	// Id matches rank before description matches.
	results := s.SearchSubcategories("aa-01", "")
	if len(results) != 1 || results[0].ID != "PR.AA-01" {
		t.Fatalf("id search = %v", results)
	}

	results = s.SearchSubcategories("least privilege", "")
	if len(results) != 1 || results[0].ID != "PR.AA-05" {
		t.Fatalf("description search = %v", results)
	}

	// Function scoping
	if got := s.SearchSubcategories("credentials", "PR"); len(got) != 1 {
		t.Errorf("function-scoped search = %v", got)
	}
	if got := s.SearchSubcategories("credentials", "DE"); len(got) != 0 {
		t.Errorf("wrong-function search should be empty, got %v", got)
	}

	// Empty query with a function lists that function's subcategories.
	if got := s.SearchSubcategories("", "PR"); len(got) != 2 {
		t.Errorf("function listing = %v", got)
	}
}
