// Package analysis derives relationships, compliance gaps, coverage, and
// risk scores from a loaded catalog snapshot. Every operation is a pure
// function of the store and its arguments.
package analysis

import "github.com/ethanolivertroy/nist-grc/internal/catalog"

// Analyzer answers relationship and gap/coverage queries against one
// immutable catalog store.
type Analyzer struct {
	store *catalog.Store
}

// New creates an Analyzer over a loaded store.
func New(store *catalog.Store) *Analyzer {
	return &Analyzer{store: store}
}
