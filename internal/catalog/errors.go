package catalog

import "errors"

// Error taxonomy for the engine. Callers match with errors.Is; every
// failure path wraps one of these sentinels with context.
var (
	// ErrNotInitialized is returned when the engine is queried before a
	// catalog has been loaded.
	ErrNotInitialized = errors.New("catalog not initialized")

	// ErrIntegrity is returned by Load when the input documents violate a
	// referential or structural invariant. A store is never built from
	// inconsistent data.
	ErrIntegrity = errors.New("data integrity violation")

	// ErrNotFound is returned for unknown control, family, baseline,
	// subcategory, or framework identifiers.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for out-of-range arguments such as a
	// non-positive search limit or a CMMC level outside 1..5.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedFramework is returned for compliance mapping requests
	// naming a framework without a mapping table.
	ErrUnsupportedFramework = errors.New("unsupported framework")
)
