package sim

import "errors"

var (
	// ErrInvalidConfig indicates an ice or event configuration that cannot run.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrNoRandSource indicates stochastic events were requested without a
	// random source.
	ErrNoRandSource = errors.New("sim: stochastic events require a random source")

	// ErrInvalidState indicates the water temperature became NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")
)

// SimulationError wraps an error with the tick at which it happened.
type SimulationError struct {
	Step        int
	Time        float64
	Temperature float64
	Wrapped     error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
