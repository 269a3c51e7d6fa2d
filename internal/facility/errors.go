package facility

import "errors"

var (
	// ErrEmptyCatalog is returned when a selection is requested from a catalog
	// that holds no facility types.
	ErrEmptyCatalog = errors.New("facility catalog is empty")

	// ErrDuplicateType is returned when a type name is already in the catalog.
	ErrDuplicateType = errors.New("facility already exists")

	// ErrInvalidType is returned for a type that fails construction checks.
	ErrInvalidType = errors.New("invalid facility type")
)
