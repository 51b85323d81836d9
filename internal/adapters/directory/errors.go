package directory

import "errors"

// Sentinel kinds for directory errors.
var (
	ErrNotFound   = errors.New("helper not found")
	ErrEmptyID    = errors.New("helper id is required")
	ErrEmptySkill = errors.New("search skill is required")
)
