package calculation

import "errors"

var (
	// ErrInvalidInput is returned for arguments a calculation cannot be defined on,
	// such as a loan term of zero months.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownProperty is returned when a property title matches no record.
	ErrUnknownProperty = errors.New("unknown property")
)
