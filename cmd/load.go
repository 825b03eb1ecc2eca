package cmd

import (
	"fmt"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/loader"
)

// LoadStore builds the catalog store from a data directory, or from the
// built-in sample dataset when dataDir is empty.
func LoadStore(dataDir string) (*catalog.Store, error) {
	in := loader.Sample()
	if dataDir != "" {
		loaded, err := loader.Load(dataDir)
		if err != nil {
			return nil, fmt.Errorf("loading data from %s: %w", dataDir, err)
		}
		in = loaded
	}

	store, err := catalog.Load(in)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return store, nil
}
