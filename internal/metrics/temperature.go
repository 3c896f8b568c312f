package metrics

import (
	"math"

	"github.com/san-kum/thermosim/internal/sim"
)

type MaxTemperature struct {
	name    string
	max     float64
	samples int
}

func NewMaxTemperature() *MaxTemperature {
	return &MaxTemperature{
		name: "max_temperature",
	}
}

func (m *MaxTemperature) Name() string { return m.name }

func (m *MaxTemperature) Observe(s sim.Sample) {
	if m.samples == 0 {
		m.max = s.Temperature
	}
	m.max = math.Max(m.max, s.Temperature)
	m.samples++
}

func (m *MaxTemperature) Value() float64 { return m.max }

func (m *MaxTemperature) Reset() {
	m.max = 0
	m.samples = 0
}

type MeanTemperature struct {
	name    string
	sum     float64
	samples int
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{
		name: "mean_temperature",
	}
}

func (m *MeanTemperature) Name() string { return m.name }

func (m *MeanTemperature) Observe(s sim.Sample) {
	m.sum += s.Temperature
	m.samples++
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.sum = 0
	m.samples = 0
}

// TemperatureDrop sums every tick-over-tick decrease, so it measures how much
// cooling events and ice took away regardless of the heater.
type TemperatureDrop struct {
	name    string
	prev    float64
	drop    float64
	samples int
}

func NewTemperatureDrop() *TemperatureDrop {
	return &TemperatureDrop{
		name: "temperature_drop",
	}
}

func (d *TemperatureDrop) Name() string { return d.name }

func (d *TemperatureDrop) Observe(s sim.Sample) {
	if d.samples > 0 && s.Temperature < d.prev {
		d.drop += d.prev - s.Temperature
	}
	d.prev = s.Temperature
	d.samples++
}

func (d *TemperatureDrop) Value() float64 { return d.drop }

func (d *TemperatureDrop) Reset() {
	d.prev = 0
	d.drop = 0
	d.samples = 0
}
