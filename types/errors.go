package types

import "errors"

var (
	// bad memory sizes, offset bits or TLB capacity
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// address out of range or unknown operation token
	ErrMalformedReference = errors.New("malformed reference")

	// Step called after the last reference was processed
	ErrSimulationExhausted = errors.New("simulation exhausted")
)
