package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

func buildBoilExperiment(params map[string]float64) (*experiment.Experiment, error) {
	p := thermal.DefaultParameters()
	p.SteelConductivity = thermal.NoLossConductivity
	p.PolyurethaneConductivity = thermal.NoLossConductivity
	p.Power = params["power"]
	p.Mass = params["mass"]

	exp := experiment.New(experiment.Config{Name: "sweep", Params: p, StopAtBoiling: true})
	if err := exp.Setup([]sim.Metric{metrics.NewTimeToReach(thermal.BoilingPoint)}, nil); err != nil {
		return nil, err
	}
	return exp, nil
}

func TestGridSearch(t *testing.T) {
	g := NewGridSearch([]string{"power", "mass"}, [][]float64{{360, 720}, {1, 0.5, -1}})

	points, err := g.Search(context.Background(), buildBoilExperiment, "time_to_100")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}

	failed := 0
	for _, p := range points {
		if p.Err != nil {
			failed++
			if !errors.Is(p.Err, thermal.ErrInvalidParameters) {
				t.Errorf("unexpected error %v", p.Err)
			}
		}
	}
	if failed != 2 {
		t.Errorf("expected the two negative-mass points to fail, got %d", failed)
	}

	best, ok := Best(points)
	if !ok {
		t.Fatal("expected a best point")
	}
	if best.Values["power"] != 720 || best.Values["mass"] != 0.5 {
		t.Errorf("unexpected best point %v", best.Values)
	}
	if best.Metric <= 0 || best.Metric > 240 {
		t.Errorf("unexpected best boil time %v", best.Metric)
	}
}

func TestGridSearchMissingMetric(t *testing.T) {
	g := NewGridSearch([]string{"power", "mass"}, [][]float64{{360}, {1}})
	points, err := g.Search(context.Background(), buildBoilExperiment, "nope")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(points) != 1 || points[0].Err == nil {
		t.Errorf("expected a failed point, got %+v", points)
	}
	if _, ok := Best(points); ok {
		t.Error("expected no best point")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"power", "mass"}, [][]float64{{360}, {1}})
	if _, err := g.Search(ctx, buildBoilExperiment, "time_to_100"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := NewGridSearch([]string{"power"}, nil).Search(context.Background(), buildBoilExperiment, "x"); err == nil {
		t.Error("expected error for mismatched ranges")
	}
}

func TestBestSkipsUnreached(t *testing.T) {
	points := []Point{
		{Values: map[string]float64{"x": 1}, Metric: -1},
		{Values: map[string]float64{"x": 2}, Metric: 30},
		{Values: map[string]float64{"x": 3}, Metric: 20},
	}
	best, ok := Best(points)
	if !ok || best.Values["x"] != 3 {
		t.Errorf("expected x=3, got %+v", best)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in     string
		name   string
		values []float64
		ok     bool
	}{
		{"params.power=100,200, 300", "params.power", []float64{100, 200, 300}, true},
		{"params.dt=0:1:3", "params.dt", []float64{0, 0.5, 1}, true},
		{"params.dt=0:1:1", "", nil, false},
		{"power", "", nil, false},
		{"=1,2", "", nil, false},
		{"power=a,b", "", nil, false},
	}

	for _, tt := range tests {
		name, values, err := ParseRange(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseRange(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.ok {
			continue
		}
		if name != tt.name || len(values) != len(tt.values) {
			t.Errorf("ParseRange(%q) = %q %v", tt.in, name, values)
			continue
		}
		for i := range values {
			if values[i] != tt.values[i] {
				t.Errorf("ParseRange(%q)[%d] = %v, want %v", tt.in, i, values[i], tt.values[i])
			}
		}
	}
}
