package thermal

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/multierr"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestDeriveReferenceInsulation(t *testing.T) {
	p := DefaultParameters()
	d := Derive(p)

	wantU := 1 / (0.001/16 + 0.001/0.03)
	if !almostEqual(d.U, wantU, 1e-9) {
		t.Errorf("expected U %.9f, got %.9f", wantU, d.U)
	}

	wantArea := 2*math.Pi*0.05*0.13 + math.Pi*0.05*0.05
	if !almostEqual(d.TotalArea, wantArea, 1e-12) {
		t.Errorf("expected area %.9f, got %.9f", wantArea, d.TotalArea)
	}
	if !almostEqual(d.LateralArea+d.TopArea, d.TotalArea, 1e-15) {
		t.Error("total area is not lateral + top")
	}
}

func TestDeriveNoLoss(t *testing.T) {
	tests := []struct {
		name  string
		steel float64
		pu    float64
	}{
		{"steel lossless", 1e6, 0.03},
		{"polyurethane lossless", 16, 1e6},
		{"both lossless", 1e9, 1e9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			p.SteelConductivity = tt.steel
			p.PolyurethaneConductivity = tt.pu
			if d := Derive(p); d.U != 0 {
				t.Errorf("expected U exactly 0, got %v", d.U)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		valid  bool
		errs   int
	}{
		{"defaults", func(p *Parameters) {}, true, 0},
		{"zero mass", func(p *Parameters) { p.Mass = 0 }, false, 1},
		{"negative specific heat", func(p *Parameters) { p.SpecificHeat = -1 }, false, 1},
		{"zero duration", func(p *Parameters) { p.Duration = 0 }, false, 1},
		{"NaN mass", func(p *Parameters) { p.Mass = math.NaN() }, false, 1},
		{"zero dt", func(p *Parameters) { p.Dt = 0 }, false, 1},
		{"mass and duration", func(p *Parameters) { p.Mass = 0; p.Duration = -5 }, false, 2},
		{"zero conductivity", func(p *Parameters) { p.SteelConductivity = 0 }, false, 1},
		{"no insulation", func(p *Parameters) { p.SteelThickness = 0; p.PolyurethaneThickness = 0 }, false, 1},
		{"no insulation but lossless", func(p *Parameters) {
			p.SteelThickness = 0
			p.PolyurethaneThickness = 0
			p.PolyurethaneConductivity = 1e6
		}, true, 0},
		{"negative ambient is fine", func(p *Parameters) { p.AmbientTemperature = -20 }, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			if tt.valid {
				if err != nil {
					t.Fatalf("expected valid parameters, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("expected ErrInvalidParameters, got %v", err)
			}
			if n := len(multierr.Errors(err)); n != tt.errs {
				t.Errorf("expected %d errors, got %d: %v", tt.errs, n, err)
			}
		})
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	p := DefaultParameters()
	p.Mass = 0
	if _, err := New(p); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestRecompute(t *testing.T) {
	m, err := New(DefaultParameters())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	before := m.Derived

	m.Params.Radius = 0.1
	if m.Derived != before {
		t.Fatal("derived constants changed without Recompute")
	}
	if err := m.Recompute(); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if m.Derived.TotalArea <= before.TotalArea {
		t.Errorf("expected larger area after recompute, got %v <= %v", m.Derived.TotalArea, before.TotalArea)
	}

	m.Params.Mass = -1
	kept := m.Derived
	if err := m.Recompute(); err == nil {
		t.Error("expected error, got nil")
	}
	if m.Derived != kept {
		t.Error("failed recompute replaced derived constants")
	}
}

func TestUpdatePowerFromVoltage(t *testing.T) {
	m, err := New(DefaultParameters())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	derived := m.Derived

	m.UpdatePowerFromVoltage(12)
	if !almostEqual(m.Params.Power, 360, 1e-9) {
		t.Errorf("expected power 360, got %v", m.Params.Power)
	}
	if m.Params.Voltage != 12 {
		t.Errorf("expected voltage 12, got %v", m.Params.Voltage)
	}

	m.Params.Resistance = 0.5
	m.UpdatePowerFromVoltage(10)
	if !almostEqual(m.Params.Power, 200, 1e-9) {
		t.Errorf("expected power 200, got %v", m.Params.Power)
	}
	if m.Derived != derived {
		t.Error("power update touched derived constants")
	}
}

func TestEquilibriumTemperature(t *testing.T) {
	m, err := New(DefaultParameters())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	got, err := m.EquilibriumTemperature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 20 + 360/(m.Derived.U*m.Derived.TotalArea)
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("expected %.6f, got %.6f", want, got)
	}

	p := DefaultParameters()
	p.SteelConductivity = 1e6
	lossless, err := New(p)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := lossless.EquilibriumTemperature(); !errors.Is(err, ErrNoEquilibrium) {
		t.Errorf("expected ErrNoEquilibrium, got %v", err)
	}
}

func TestIdealTimeToBoil(t *testing.T) {
	m, err := New(DefaultParameters())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	want := 1.0 * 4186 * 80 / 360
	if got := m.IdealTimeToBoil(); !almostEqual(got, want, 1e-9) {
		t.Errorf("expected %.4f, got %.4f", want, got)
	}
	if got := m.RisePerSecond(); !almostEqual(got, 360.0/4186, 1e-12) {
		t.Errorf("expected rise %.6f, got %.6f", 360.0/4186, got)
	}

	m.Params.InitialTemperature = 100
	if got := m.IdealTimeToBoil(); got != 0 {
		t.Errorf("expected 0 when already boiling, got %v", got)
	}

	m.Params.InitialTemperature = 20
	m.Params.Power = 0
	if got := m.IdealTimeToBoil(); !math.IsInf(got, 1) {
		t.Errorf("expected +Inf without power, got %v", got)
	}
}
