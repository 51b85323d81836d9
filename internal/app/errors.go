package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrMissingHelperID = errors.New("helper id is required")
	ErrQueueFull       = errors.New("outcome queue is full")
)
