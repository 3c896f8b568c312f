package sim

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/san-kum/thermosim/internal/thermal"
)

type Simulator struct {
	model     *thermal.Model
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func New(model *thermal.Model) *Simulator {
	return &Simulator{
		model:     model,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    log.New(io.Discard),
	}
}

func (s *Simulator) AddMetric(m Metric)           { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)       { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(logger *log.Logger) { s.logger = logger }
func (s *Simulator) Model() *thermal.Model        { return s.model }

// Run integrates the water temperature tick by tick. The parameters and
// derived constants of the model are read once and held fixed for the run.
// rng may be nil when cfg has no stochastic events.
func (s *Simulator) Run(ctx context.Context, cfg Config, rng RandSource) (*Result, error) {
	if err := s.validate(cfg, rng); err != nil {
		return nil, err
	}

	p := s.model.Params
	lossCoeff := s.model.Derived.LossCoefficient()
	dt := p.Dt
	steps := int(math.Round(p.Duration / dt))

	result := &Result{
		ID:           uuid.New(),
		Times:        make([]float64, 0, steps+1),
		Temperatures: make([]float64, 0, steps+1),
		Events:       make([]Event, 0),
		Metrics:      make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var events *eventState
	if cfg.Events != nil {
		events = newEventState(*cfg.Events)
	}
	var ice *IceState
	if cfg.Ice != nil {
		ice = NewIceState(*cfg.Ice)
	}

	temp := p.InitialTemperature
	waterMass := p.Mass
	c := p.SpecificHeat

	s.logger.Debug("run started", "id", result.ID, "steps", steps, "dt", dt,
		"ice", ice != nil, "events", events != nil, "stop_at_boiling", cfg.StopAtBoiling)

	s.record(result, newSample(0, 0, temp, waterMass, ice))

	for step := 1; step <= steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(step) * dt

		if events != nil {
			if ev, ok := events.maybeStart(rng, t); ok {
				result.Events = append(result.Events, ev)
				s.logger.Debug("cooling event", "onset", ev.Onset, "magnitude", ev.Magnitude, "duration", ev.Duration)
			}
		}

		// Losses are not clamped: water below ambient gains through this term.
		loss := lossCoeff * (temp - p.AmbientTemperature)
		net := (p.Power - loss) * dt
		if net < 0 {
			net = 0
		}

		if ice != nil && ice.InContact(t) {
			if q := ice.convection(temp, waterMass, c, dt); q > 0 {
				before := waterMass
				used, melted := ice.Absorb(q)
				waterMass += melted
				temp -= used / (before * c)
			}
			if ice.Solid() {
				used, melted := ice.Absorb(net)
				net -= used
				waterMass += melted
			}
			if !ice.Solid() {
				ice.LatentEnergy = 0
				ice.MeltedAt = t
				s.logger.Debug("ice melted", "time", t, "water_mass", waterMass)
			}
		}

		if net > 0 {
			temp += net / (waterMass * c)
		}

		if events != nil {
			temp = events.apply(temp)
		}

		temp = clampTemperature(temp, ice, t)

		if math.IsNaN(temp) || math.IsInf(temp, 0) {
			return result, &SimulationError{Step: step, Time: t, Temperature: temp, Wrapped: ErrInvalidState}
		}

		result.StepsTaken++
		s.record(result, newSample(step, t, temp, waterMass, ice))

		if temp >= thermal.BoilingPoint {
			result.Boiled = true
			if cfg.StopAtBoiling {
				break
			}
		}
	}

	if ice != nil {
		result.Ice = ice.result(waterMass)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	finalTime, finalTemp := result.Final()
	s.logger.Debug("run finished", "id", result.ID, "steps", result.StepsTaken,
		"time", finalTime, "temperature", finalTemp, "events", len(result.Events), "boiled", result.Boiled)

	return result, nil
}

func newSample(step int, t, temp, waterMass float64, ice *IceState) Sample {
	sample := Sample{Step: step, Time: t, Temperature: temp, WaterMass: waterMass}
	if ice != nil && ice.Solid() {
		sample.IceMass = ice.Mass
		sample.IceTemperature = ice.Temperature
		sample.IceSolid = true
	}
	return sample
}

func (s *Simulator) record(result *Result, sample Sample) {
	result.Times = append(result.Times, sample.Time)
	result.Temperatures = append(result.Temperatures, sample.Temperature)
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}
}

// clampTemperature keeps the water from dropping below the ice it touches, or
// below 0 °C when there is none: freezing is not modeled.
func clampTemperature(temp float64, ice *IceState, t float64) float64 {
	floor := 0.0
	if ice != nil && ice.InContact(t) && ice.Temperature < 0 {
		floor = ice.Temperature
	}
	return math.Max(temp, floor)
}

func (s *Simulator) validate(cfg Config, rng RandSource) error {
	if s.model == nil {
		return fmt.Errorf("%w: no model", ErrInvalidConfig)
	}
	p := s.model.Params
	if err := p.Validate(); err != nil {
		return err
	}
	if math.Round(p.Duration/p.Dt) < 1 {
		return fmt.Errorf("%w: duration %g is shorter than one step of %g", ErrInvalidConfig, p.Duration, p.Dt)
	}
	if cfg.Events != nil {
		if err := cfg.Events.Validate(); err != nil {
			return err
		}
		if rng == nil {
			return ErrNoRandSource
		}
	}
	if cfg.Ice != nil {
		if err := cfg.Ice.Validate(); err != nil {
			return err
		}
	}
	return nil
}
