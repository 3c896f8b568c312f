package thermal

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

const (
	// BoilingPoint of water at sea level, in °C.
	BoilingPoint = 100.0

	// NoLossConductivity is the conductivity at or above which an insulation
	// layer is treated as lossless and U is forced to zero.
	NoLossConductivity = 1e6
)

const (
	DefaultMass                     = 1.0
	DefaultSpecificHeat             = 4186.0
	DefaultPower                    = 360.0
	DefaultAmbientTemperature       = 20.0
	DefaultInitialTemperature       = 20.0
	DefaultDuration                 = 2500.0
	DefaultDt                       = 1.0
	DefaultRadius                   = 0.05
	DefaultHeight                   = 0.13
	DefaultSteelThickness           = 0.001
	DefaultPolyurethaneThickness    = 0.001
	DefaultSteelConductivity        = 16.0
	DefaultPolyurethaneConductivity = 0.03
	DefaultVoltage                  = 12.0
	DefaultResistance               = 0.4
)

// Parameters holds the physical configuration of one simulation run.
type Parameters struct {
	Mass               float64 `koanf:"mass" yaml:"mass" json:"mass"`                                              // kg of water
	SpecificHeat       float64 `koanf:"specific_heat" yaml:"specific_heat" json:"specific_heat"`                   // J/(kg·K)
	Power              float64 `koanf:"power" yaml:"power" json:"power"`                                           // W
	AmbientTemperature float64 `koanf:"ambient_temperature" yaml:"ambient_temperature" json:"ambient_temperature"` // °C
	InitialTemperature float64 `koanf:"initial_temperature" yaml:"initial_temperature" json:"initial_temperature"` // °C
	Duration           float64 `koanf:"duration" yaml:"duration" json:"duration"`                                  // s
	Dt                 float64 `koanf:"dt" yaml:"dt" json:"dt"`                                                    // s

	Radius float64 `koanf:"radius" yaml:"radius" json:"radius"` // m
	Height float64 `koanf:"height" yaml:"height" json:"height"` // m

	SteelThickness           float64 `koanf:"steel_thickness" yaml:"steel_thickness" json:"steel_thickness"`                               // m
	PolyurethaneThickness    float64 `koanf:"polyurethane_thickness" yaml:"polyurethane_thickness" json:"polyurethane_thickness"`          // m
	SteelConductivity        float64 `koanf:"steel_conductivity" yaml:"steel_conductivity" json:"steel_conductivity"`                      // W/(m·K)
	PolyurethaneConductivity float64 `koanf:"polyurethane_conductivity" yaml:"polyurethane_conductivity" json:"polyurethane_conductivity"` // W/(m·K)

	Voltage    float64 `koanf:"voltage" yaml:"voltage" json:"voltage"`          // V
	Resistance float64 `koanf:"resistance" yaml:"resistance" json:"resistance"` // Ω
}

func DefaultParameters() Parameters {
	return Parameters{
		Mass:                     DefaultMass,
		SpecificHeat:             DefaultSpecificHeat,
		Power:                    DefaultPower,
		AmbientTemperature:       DefaultAmbientTemperature,
		InitialTemperature:       DefaultInitialTemperature,
		Duration:                 DefaultDuration,
		Dt:                       DefaultDt,
		Radius:                   DefaultRadius,
		Height:                   DefaultHeight,
		SteelThickness:           DefaultSteelThickness,
		PolyurethaneThickness:    DefaultPolyurethaneThickness,
		SteelConductivity:        DefaultSteelConductivity,
		PolyurethaneConductivity: DefaultPolyurethaneConductivity,
		Voltage:                  DefaultVoltage,
		Resistance:               DefaultResistance,
	}
}

// NoLoss reports whether either insulation layer is configured as lossless.
func (p Parameters) NoLoss() bool {
	return p.SteelConductivity >= NoLossConductivity || p.PolyurethaneConductivity >= NoLossConductivity
}

// Validate returns every violated precondition, combined.
func (p Parameters) Validate() error {
	var err error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParameters, name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) || math.IsInf(v, 0) {
			err = multierr.Append(err, fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidParameters, name, v))
		}
	}
	finite := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParameters, name, v))
		}
	}

	positive("mass", p.Mass)
	positive("specific heat", p.SpecificHeat)
	positive("duration", p.Duration)
	positive("dt", p.Dt)
	positive("steel conductivity", p.SteelConductivity)
	positive("polyurethane conductivity", p.PolyurethaneConductivity)
	positive("resistance", p.Resistance)
	nonNegative("power", p.Power)
	nonNegative("radius", p.Radius)
	nonNegative("height", p.Height)
	nonNegative("steel thickness", p.SteelThickness)
	nonNegative("polyurethane thickness", p.PolyurethaneThickness)
	finite("ambient temperature", p.AmbientTemperature)
	finite("initial temperature", p.InitialTemperature)
	finite("voltage", p.Voltage)

	if err == nil && !p.NoLoss() && p.insulationResistance() == 0 {
		err = fmt.Errorf("%w: insulation has zero thermal resistance", ErrInvalidParameters)
	}
	return err
}

func (p Parameters) insulationResistance() float64 {
	return p.SteelThickness/p.SteelConductivity + p.PolyurethaneThickness/p.PolyurethaneConductivity
}
