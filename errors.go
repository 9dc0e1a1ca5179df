package osgrid

import "github.com/pkg/errors"

var (
	// ErrUnsupportedConversion is returned when a datum pair or angular unit
	// pair has no registered conversion.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	// ErrNoConvergence is returned when an iterative step does not reach its
	// tolerance within the iteration limit.
	ErrNoConvergence = errors.New("iteration did not converge")
	// ErrInvalidGridReference is returned for grid references that cannot
	// be parsed or formatted.
	ErrInvalidGridReference = errors.New("invalid grid reference")
	// ErrInvalidParameter is returned when a table key is outside its
	// enumeration.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// maxIterations bounds every iterative refinement in the package. Real
// inputs converge in a handful of steps.
const maxIterations = 100
