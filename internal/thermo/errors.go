package thermo

import (
	"errors"
	"fmt"
)

// Domain errors for cooling simulations.
var (
	// ErrNonPositiveMass indicates a mass <= 0.
	ErrNonPositiveMass = errors.New("thermo: mass must be positive")

	// ErrNonPositiveSpecificHeat indicates a specific heat <= 0.
	ErrNonPositiveSpecificHeat = errors.New("thermo: specific heat must be positive")

	// ErrNegativeArea indicates a surface area < 0.
	ErrNegativeArea = errors.New("thermo: surface area must be non-negative")

	// ErrAmbientNotBelowInitial indicates ambient >= initial, for which the
	// cooling-only model is meaningless.
	ErrAmbientNotBelowInitial = errors.New("thermo: ambient temperature must be below initial")

	// ErrNilEmissivity indicates a model built without an emissivity provider.
	ErrNilEmissivity = errors.New("thermo: emissivity provider is nil")

	// ErrEmptyGrid indicates a reporting grid with no sample points.
	ErrEmptyGrid = errors.New("thermo: reporting grid is empty")

	// ErrToleranceNotMet indicates the adaptive solver exhausted its step
	// budget before reaching the end of the grid.
	ErrToleranceNotMet = errors.New("thermo: step budget exhausted before tolerance was met")

	// ErrStepTooSmall indicates the adaptive timestep fell below the minimum.
	ErrStepTooSmall = errors.New("thermo: adaptive timestep below minimum")
)

// IntegrationError wraps a solver failure with the integration context at the
// point it was abandoned. A failed integration never yields a partial
// trajectory.
type IntegrationError struct {
	Time    float64
	Steps   int
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failed at t=%.4f after %d steps: %v", e.Time, e.Steps, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
