package types

import "errors"

// Sentinel errors for Light Feedback operations.
// The API layer maps these to HTTP status codes; everything else is treated
// as an opaque server error.
var (
	// ErrNotFound indicates the requested feedback item or comment parent
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProjectNotAllowed indicates a project_key outside the
	// developer-controlled allow-list.
	ErrProjectNotAllowed = errors.New("project is not allowed")

	// ErrInvalidType indicates a feedback type outside the fixed enumeration.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidStatus indicates a status outside the fixed enumeration.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidSeverity indicates a severity outside the fixed enumeration.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrEmptyUpdate indicates an update request supplying no updatable field.
	ErrEmptyUpdate = errors.New("nothing to update")
)
