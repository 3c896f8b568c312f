package sim

import (
	"fmt"
	"math"
)

// DefaultEventFloor is the temperature below which a cooling event stops
// pulling the water down.
const DefaultEventFloor = 10.0

// EventConfig parameterizes stochastic cooling events. Magnitudes are in °C,
// durations in ticks, both drawn uniformly from their inclusive ranges.
type EventConfig struct {
	Probability  float64
	MagnitudeMin float64
	MagnitudeMax float64
	DurationMin  int
	DurationMax  int
	Floor        float64
}

func DefaultEventConfig() EventConfig {
	return EventConfig{
		Probability:  1.0 / 300,
		MagnitudeMin: 0,
		MagnitudeMax: 50,
		DurationMin:  30,
		DurationMax:  120,
		Floor:        DefaultEventFloor,
	}
}

func (c EventConfig) Validate() error {
	if math.IsNaN(c.Probability) || c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("%w: event probability must be in [0,1], got %g", ErrInvalidConfig, c.Probability)
	}
	if c.MagnitudeMin < 0 || c.MagnitudeMax < c.MagnitudeMin {
		return fmt.Errorf("%w: event magnitude range [%g,%g]", ErrInvalidConfig, c.MagnitudeMin, c.MagnitudeMax)
	}
	if c.DurationMin < 1 || c.DurationMax < c.DurationMin {
		return fmt.Errorf("%w: event duration range [%d,%d]", ErrInvalidConfig, c.DurationMin, c.DurationMax)
	}
	if math.IsNaN(c.Floor) || math.IsInf(c.Floor, 0) {
		return fmt.Errorf("%w: event floor must be finite", ErrInvalidConfig)
	}
	return nil
}

type eventState struct {
	cfg       EventConfig
	active    bool
	decrement float64
	remaining int
}

func newEventState(cfg EventConfig) *eventState {
	return &eventState{cfg: cfg}
}

// maybeStart draws once while idle. On trigger it draws the magnitude and
// then the duration, in that order.
func (e *eventState) maybeStart(rng RandSource, t float64) (Event, bool) {
	if e.active {
		return Event{}, false
	}
	if rng.Float64() >= e.cfg.Probability {
		return Event{}, false
	}

	magnitude := e.cfg.MagnitudeMin + rng.Float64()*(e.cfg.MagnitudeMax-e.cfg.MagnitudeMin)
	duration := e.cfg.DurationMin + rng.IntN(e.cfg.DurationMax-e.cfg.DurationMin+1)

	e.active = true
	e.remaining = duration
	// fixed total over fixed duration: the ramp is linear
	e.decrement = magnitude / float64(duration)

	return Event{Onset: t, Magnitude: magnitude, Duration: duration}, true
}

// apply lowers temp by one tick's share of the active event. The result never
// drops below the floor, and temperatures already under it are left alone.
func (e *eventState) apply(temp float64) float64 {
	if !e.active {
		return temp
	}

	next := temp - e.decrement
	// water already under the floor is left where it is, not raised to it
	if floor := math.Min(temp, e.cfg.Floor); next < floor {
		next = floor
	}

	e.remaining--
	if e.remaining <= 0 {
		e.active = false
	}
	return next
}
