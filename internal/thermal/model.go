package thermal

import "math"

// Derived constants of a parameter set.
type Derived struct {
	U           float64 // W/(m²·K)
	LateralArea float64 // m²
	TopArea     float64 // m²
	TotalArea   float64 // m²
}

// LossCoefficient is U·A, the heat lost per kelvin above ambient, in W/K.
func (d Derived) LossCoefficient() float64 {
	return d.U * d.TotalArea
}

// Derive computes the heat-transfer coefficient and the exposed surface of
// the cylinder (lateral wall plus lid). It assumes p has been validated.
func Derive(p Parameters) Derived {
	d := Derived{
		LateralArea: 2 * math.Pi * p.Radius * p.Height,
		TopArea:     math.Pi * p.Radius * p.Radius,
	}
	d.TotalArea = d.LateralArea + d.TopArea

	if !p.NoLoss() {
		d.U = 1 / p.insulationResistance()
	}
	return d
}

// Model pairs parameters with the constants derived from them.
type Model struct {
	Params  Parameters
	Derived Derived
}

func New(p Parameters) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{Params: p, Derived: Derive(p)}, nil
}

// Recompute validates the current parameters and refreshes the derived
// constants. The previous constants are kept when validation fails.
func (m *Model) Recompute() error {
	if err := m.Params.Validate(); err != nil {
		return err
	}
	m.Derived = Derive(m.Params)
	return nil
}

// UpdatePowerFromVoltage sets the supply voltage and derives the heater power
// as V²/R from the current resistance.
func (m *Model) UpdatePowerFromVoltage(v float64) {
	m.Params.Voltage = v
	m.Params.Power = PowerFromVoltage(v, m.Params.Resistance)
}

// PowerFromVoltage is the Joule heating V²/R of a resistive element.
func PowerFromVoltage(v, r float64) float64 {
	return v * v / r
}

// EquilibriumTemperature is the temperature at which losses match heater
// power: T_amb + P/(U·A). It returns ErrNoEquilibrium when U·A is zero.
func (m *Model) EquilibriumTemperature() (float64, error) {
	k := m.Derived.LossCoefficient()
	if k <= 0 {
		return 0, ErrNoEquilibrium
	}
	return m.Params.AmbientTemperature + m.Params.Power/k, nil
}

// RisePerSecond is the loss-free temperature rise per second of heating.
func (m *Model) RisePerSecond() float64 {
	return m.Params.Power / (m.Params.Mass * m.Params.SpecificHeat)
}

// IdealTimeToBoil is the loss-free time in seconds to heat the water from its
// initial temperature to BoilingPoint. It is +Inf without heater power.
func (m *Model) IdealTimeToBoil() float64 {
	delta := BoilingPoint - m.Params.InitialTemperature
	if delta <= 0 {
		return 0
	}
	if m.Params.Power <= 0 {
		return math.Inf(1)
	}
	return m.Params.Mass * m.Params.SpecificHeat * delta / m.Params.Power
}
