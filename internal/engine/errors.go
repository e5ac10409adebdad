package engine

import "errors"

// Errors returned by controller operations.
var (
	// ErrInvalidDocument indicates the host does not know the document.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrRangeInvalid indicates an invalid row range (e.g., max < min).
	ErrRangeInvalid = errors.New("invalid range")
)
