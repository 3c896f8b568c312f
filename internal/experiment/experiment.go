package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

type Config struct {
	Name          string
	Params        thermal.Parameters
	StopAtBoiling bool
	Events        *sim.EventConfig
	Ice           *sim.IceConfig
	Seed          int64
}

func (c Config) simConfig() sim.Config {
	return sim.Config{
		StopAtBoiling: c.StopAtBoiling,
		Events:        c.Events,
		Ice:           c.Ice,
	}
}

type Experiment struct {
	cfg       Config
	model     *thermal.Model
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the parameters and builds the model and simulator. logger
// may be nil.
func (e *Experiment) Setup(metrics []sim.Metric, logger *log.Logger) error {
	model, err := thermal.New(e.cfg.Params)
	if err != nil {
		return fmt.Errorf("experiment %q: %w", e.cfg.Name, err)
	}

	e.model = model
	e.simulator = sim.New(model)
	if logger != nil {
		e.simulator.SetLogger(logger.With("experiment", e.cfg.Name))
	}
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// Run reseeds from Seed on every call, so repeated runs are identical.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.simConfig(), sim.NewRand(e.cfg.Seed))
}

// RunEnsemble repeats the experiment runs times, seeding run i with Seed+i.
func (e *Experiment) RunEnsemble(ctx context.Context, runs int) ([]*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return sim.NewEnsemble(e.simulator, runs, e.cfg.Seed).Run(ctx, e.cfg.simConfig())
}

func (e *Experiment) Model() *thermal.Model { return e.model }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
