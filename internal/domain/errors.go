package domain

import "errors"

// Domain errors (no external dependencies). Storage failures are wrapped
// with %w at the repo boundary instead of mapping onto these.
var (
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrNotFound          = errors.New("not found")
	ErrReferenceNotFound = errors.New("reference not found")
)
