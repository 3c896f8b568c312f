package sim

import (
	"fmt"
	"math"
)

// IceConfig describes the ice added to the water. Defaults are two 3 cm cubes
// of 50 g each at -5 °C dropped in after two minutes.
type IceConfig struct {
	Mass                  float64 // kg
	InitialTemperature    float64 // °C, at most 0
	SpecificHeat          float64 // J/(kg·K)
	LatentHeat            float64 // J/kg
	ConvectionCoefficient float64 // W/(m²·K), water to ice
	Surface               float64 // m², exposed at full mass
	IntroductionTime      float64 // s
}

const (
	defaultCubeMass  = 0.05
	defaultCubeSide  = 0.03
	defaultCubeCount = 2
)

func DefaultIceConfig() IceConfig {
	return IceConfig{
		Mass:                  defaultCubeMass * defaultCubeCount,
		InitialTemperature:    -5,
		SpecificHeat:          2100,
		LatentHeat:            334000,
		ConvectionCoefficient: 500,
		Surface:               6 * defaultCubeSide * defaultCubeSide * defaultCubeCount,
		IntroductionTime:      120,
	}
}

func (c IceConfig) Validate() error {
	switch {
	case !(c.Mass > 0):
		return fmt.Errorf("%w: ice mass must be positive, got %g", ErrInvalidConfig, c.Mass)
	case !(c.SpecificHeat > 0):
		return fmt.Errorf("%w: ice specific heat must be positive, got %g", ErrInvalidConfig, c.SpecificHeat)
	case !(c.LatentHeat > 0):
		return fmt.Errorf("%w: latent heat must be positive, got %g", ErrInvalidConfig, c.LatentHeat)
	case !(c.InitialTemperature <= 0) || math.IsInf(c.InitialTemperature, 0):
		return fmt.Errorf("%w: ice temperature must be finite and at most 0, got %g", ErrInvalidConfig, c.InitialTemperature)
	case !(c.ConvectionCoefficient >= 0):
		return fmt.Errorf("%w: convection coefficient must not be negative", ErrInvalidConfig)
	case !(c.Surface >= 0):
		return fmt.Errorf("%w: ice surface must not be negative", ErrInvalidConfig)
	case !(c.IntroductionTime >= 0):
		return fmt.Errorf("%w: ice introduction time must not be negative", ErrInvalidConfig)
	}
	return nil
}

// IceState tracks the solid phase. Temperature is meaningful only while
// Solid reports true.
type IceState struct {
	Mass         float64
	Temperature  float64
	LatentEnergy float64
	Surface      float64
	MeltedAt     float64

	cfg IceConfig
}

func NewIceState(cfg IceConfig) *IceState {
	return &IceState{
		Mass:         cfg.Mass,
		Temperature:  cfg.InitialTemperature,
		LatentEnergy: cfg.Mass * cfg.LatentHeat,
		Surface:      cfg.Surface,
		MeltedAt:     -1,
		cfg:          cfg,
	}
}

func (s *IceState) Solid() bool {
	return s.Mass > 0
}

// InContact reports whether the ice is in the water at time t.
func (s *IceState) InContact(t float64) bool {
	return s.Solid() && t >= s.cfg.IntroductionTime
}

// convection returns the energy the water can hand to the ice over dt. It is
// capped at what would bring the water down to the ice temperature.
func (s *IceState) convection(waterTemp, waterMass, waterSpecificHeat, dt float64) float64 {
	if waterTemp <= s.Temperature {
		return 0
	}
	q := s.cfg.ConvectionCoefficient * s.Surface * (waterTemp - s.Temperature) * dt
	return math.Min(q, waterMass*waterSpecificHeat*(waterTemp-s.Temperature))
}

// Absorb spends energy on the ice, first warming it to 0 °C and then melting
// it. It returns the energy actually used and the mass that turned to water.
func (s *IceState) Absorb(energy float64) (used, melted float64) {
	if energy <= 0 || !s.Solid() {
		return 0, 0
	}

	if s.Temperature < 0 {
		need := s.Mass * s.cfg.SpecificHeat * -s.Temperature
		if energy >= need {
			s.Temperature = 0
			used = need
		} else {
			s.Temperature = math.Min(0, s.Temperature+energy/(s.Mass*s.cfg.SpecificHeat))
			used = energy
		}
		energy -= used
	}

	if s.Temperature < 0 || energy <= 0 {
		return used, 0
	}

	need := s.Mass * s.cfg.LatentHeat
	if energy >= need {
		melted = s.Mass
		used += need
		s.Mass = 0
	} else {
		melted = energy / s.cfg.LatentHeat
		used += energy
		s.Mass -= melted
	}

	s.LatentEnergy = s.Mass * s.cfg.LatentHeat
	s.Surface = s.cfg.Surface * s.Mass / s.cfg.Mass
	return used, melted
}

func (s *IceState) result(waterMass float64) *IceResult {
	r := &IceResult{
		Mass:      s.Mass,
		Solid:     s.Solid(),
		MeltedAt:  s.MeltedAt,
		WaterMass: waterMass,
	}
	if r.Solid {
		r.Temperature = s.Temperature
	}
	return r
}
