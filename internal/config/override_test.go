package config

import "testing"

func TestOverride(t *testing.T) {
	base := DefaultConfig()

	cfg, err := Override(base, map[string]any{
		"params.power": 500.0,
		"ice.enabled":  true,
		"seed":         9,
	})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if cfg.Params.Power != 500 || !cfg.Ice.Enabled || cfg.Seed != 9 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if base.Params.Power != 360 || base.Ice.Enabled {
		t.Error("base config was modified")
	}
	if cfg.Params.Mass != base.Params.Mass {
		t.Errorf("untouched key changed: %v", cfg.Params.Mass)
	}
}

func TestOverrideUnknownKey(t *testing.T) {
	if _, err := Override(DefaultConfig(), map[string]any{"params.colour": 1.0}); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := Override(DefaultConfig(), map[string]any{"params": 1.0}); err == nil {
		t.Error("expected error for a section key")
	}
}

func TestOverrideIntegerKeys(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		valid bool
	}{
		{"whole float runs", "runs", 4.0, true},
		{"int duration", "events.duration_min", 12, true},
		{"fractional duration", "events.duration_min", 30.5, false},
		{"fractional seed", "seed", 1.25, false},
		{"string runs", "runs", "three", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Override(DefaultConfig(), map[string]any{tt.key: tt.value})
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected error")
			}
		})
	}

	cfg, err := Override(DefaultConfig(), map[string]any{"runs": 4.0, "events.duration_min": 12})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if cfg.Runs != 4 || cfg.Events.DurationMin != 12 {
		t.Errorf("integer overrides not applied: runs=%d duration_min=%d", cfg.Runs, cfg.Events.DurationMin)
	}
}
