package thermal

import "errors"

var (
	// ErrInvalidParameters wraps every parameter validation failure.
	ErrInvalidParameters = errors.New("thermal: invalid parameters")

	// ErrNoEquilibrium indicates the vessel loses no heat, so the water has
	// no finite equilibrium temperature below boiling.
	ErrNoEquilibrium = errors.New("thermal: no finite equilibrium temperature")
)
