package models

import "errors"

// Error kinds surfaced by the workout domain. Callers match them with errors.Is;
// every returned error wraps exactly one of these.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrEmptyCollection      = errors.New("empty collection")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrPersistence          = errors.New("persistence error")
)
