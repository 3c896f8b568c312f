package metrics

import "github.com/san-kum/thermosim/internal/sim"

// HeaterEnergy reports the joules the heater delivered over the observed
// span at a constant power.
type HeaterEnergy struct {
	name    string
	power   float64
	first   float64
	last    float64
	samples int
}

func NewHeaterEnergy(power float64) *HeaterEnergy {
	return &HeaterEnergy{
		name:  "heater_energy",
		power: power,
	}
}

func (e *HeaterEnergy) Name() string { return e.name }

func (e *HeaterEnergy) Observe(s sim.Sample) {
	if e.samples == 0 {
		e.first = s.Time
	}
	e.last = s.Time
	e.samples++
}

func (e *HeaterEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.power * (e.last - e.first)
}

func (e *HeaterEnergy) Reset() {
	e.first = 0
	e.last = 0
	e.samples = 0
}
