package sim

import "github.com/google/uuid"

// Sample is the observable state at the end of one tick.
type Sample struct {
	Step        int
	Time        float64
	Temperature float64
	WaterMass   float64

	// Ice fields stay zero when the ice extension is off.
	IceMass        float64
	IceTemperature float64
	IceSolid       bool
}

// RandSource is the random handle threaded through a run. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

// Config selects the behavior of a single run. Events and Ice are optional
// extensions; nil disables them.
type Config struct {
	StopAtBoiling bool
	Events        *EventConfig
	Ice           *IceConfig
}

// Event is one logged stochastic cooling excursion.
type Event struct {
	Onset     float64 `json:"onset"`     // s
	Magnitude float64 `json:"magnitude"` // °C
	Duration  int     `json:"duration"`  // ticks
}

// IceResult is the auxiliary ice output of a run.
type IceResult struct {
	Mass        float64 `json:"mass"`
	Temperature float64 `json:"temperature"` // meaningful only when Solid
	Solid       bool    `json:"solid"`
	MeltedAt    float64 `json:"melted_at"` // s, -1 while solid
	WaterMass   float64 `json:"water_mass"`
}

type Result struct {
	ID           uuid.UUID
	Times        []float64
	Temperatures []float64
	Events       []Event
	Ice          *IceResult
	Metrics      map[string]float64
	StepsTaken   int
	Boiled       bool
}

// Final returns the last sample time and temperature.
func (r *Result) Final() (float64, float64) {
	if len(r.Times) == 0 {
		return 0, 0
	}
	n := len(r.Times) - 1
	return r.Times[n], r.Temperatures[n]
}
