package domain

import "errors"

// ErrNotFound reports a lookup that matched no row. Repositories wrap it
// so callers can map missing entities to a 404 without knowing the
// storage backend.
var ErrNotFound = errors.New("not found")
