package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// snippetLen caps relevance snippets in search results.
const snippetLen = 200

// SearchHit pairs a matched control with a snippet of its statement text.
type SearchHit struct {
	Control Control `json:"control"`
	Snippet string  `json:"snippet,omitempty"`
}

// SearchControls performs a case-insensitive keyword search over control
// titles and statements. An empty query with a family filter lists that
// family in id order. Title matches rank before statement matches; ties
// break on ascending control id. limit must be positive.
func (s *Store) SearchControls(query, family string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	family = strings.ToUpper(strings.TrimSpace(family))
	q := strings.ToLower(strings.TrimSpace(query))

	type ranked struct {
		id   string
		tier int // 0 = title match, 1 = statement match
	}
	var matches []ranked
	for _, id := range s.order {
		c := s.controls[id]
		if family != "" && c.Family != family {
			continue
		}
		if q == "" {
			if family == "" {
				continue // empty query needs a family filter to mean anything
			}
			matches = append(matches, ranked{id: id})
			continue
		}
		switch {
		case strings.Contains(strings.ToLower(c.Title), q):
			matches = append(matches, ranked{id: id, tier: 0})
		case strings.Contains(strings.ToLower(c.Statement), q):
			matches = append(matches, ranked{id: id, tier: 1})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return ControlIDLess(matches[i].id, matches[j].id)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	hits := make([]SearchHit, len(matches))
	for i, m := range matches {
		c := s.controls[m.id]
		hits[i] = SearchHit{Control: c, Snippet: snippet(c.Statement)}
	}
	return hits, nil
}

// SearchSubcategories performs the same matching policy over the CSF
// hierarchy: case-insensitive substring over subcategory id and
// description, optionally scoped to one function.
func (s *Store) SearchSubcategories(query, function string) []CSFSubcategory {
	q := strings.ToLower(strings.TrimSpace(query))
	function = strings.ToUpper(strings.TrimSpace(function))

	type ranked struct {
		id   string
		tier int // 0 = id match, 1 = description match
	}
	var matches []ranked
	for _, id := range s.subcatOrder {
		sub := s.subcats[id]
		if function != "" && sub.Function != function {
			continue
		}
		if q == "" {
			if function == "" {
				continue
			}
			matches = append(matches, ranked{id: id})
			continue
		}
		switch {
		case strings.Contains(strings.ToLower(sub.ID), q):
			matches = append(matches, ranked{id: id, tier: 0})
		case strings.Contains(strings.ToLower(sub.Description), q):
			matches = append(matches, ranked{id: id, tier: 1})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return matches[i].id < matches[j].id
	})

	out := make([]CSFSubcategory, len(matches))
	for i, m := range matches {
		out[i] = s.subcats[m.id]
	}
	return out
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen]) + "..."
}
