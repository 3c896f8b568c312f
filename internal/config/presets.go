package config

import (
	"sort"

	"github.com/san-kum/thermosim/internal/thermal"
)

func preset(name string, mutate func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = name
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"reference": preset("reference", func(c *Config) {
		c.StopAtBoiling = true
	}),
	"no_loss": preset("no_loss", func(c *Config) {
		c.StopAtBoiling = true
		c.Params.SteelConductivity = thermal.NoLossConductivity
		c.Params.PolyurethaneConductivity = thermal.NoLossConductivity
	}),
	"low_power": preset("low_power", func(c *Config) {
		c.Params.Power = 100
		c.Params.Duration = 40000
	}),
	"ice": preset("ice", func(c *Config) {
		c.Ice.Enabled = true
	}),
	"stochastic": preset("stochastic", func(c *Config) {
		c.StopAtBoiling = true
		c.Events.Enabled = true
	}),
	"mains": preset("mains", func(c *Config) {
		c.StopAtBoiling = true
		c.DerivePower = true
		c.Params.Mass = 1.5
		c.Params.Voltage = 230
		c.Params.Resistance = 26.45
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
