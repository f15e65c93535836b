package spectral

import "errors"

var (
	// ErrInvalidArgument is returned when the module type and coefficient
	// arguments are both given, both missing, or malformed, and when series
	// inputs cannot be aligned.
	ErrInvalidArgument = errors.New("spectral: invalid argument")

	// ErrUnknownModuleType is returned for a module type outside the
	// published coefficient tables
	ErrUnknownModuleType = errors.New("spectral: unknown module type")
)
