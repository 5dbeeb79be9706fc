package repository

import "errors"

// ErrNotFound is returned when a row is absent or outside the caller's
// scope filter. Implementations must not distinguish the two cases.
var ErrNotFound = errors.New("not found")
