package phase

import "errors"

// Domain errors for phase construction and extraction.
var (
	// ErrMissingInput indicates a phase built without a composition or with
	// a non-finite energy.
	ErrMissingInput = errors.New("phase: composition and/or energy missing")

	// ErrEmptyComposition indicates a composition with no atoms.
	ErrEmptyComposition = errors.New("phase: composition has no atoms")

	// ErrNegativeAmount indicates a composition with a negative amount.
	ErrNegativeAmount = errors.New("phase: negative amount in composition")

	// ErrZeroAmount indicates an extraction target carrying a zero amount.
	ErrZeroAmount = errors.New("phase: zero amount in target composition")

	// ErrCollection is reserved for container-level invariant violations.
	ErrCollection = errors.New("phase: collection invariant violated")
)
