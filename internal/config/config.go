package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

// EnvPrefix marks environment variables that override configuration keys,
// e.g. THERMOSIM_PARAMS_POWER or THERMOSIM_ICE_ENABLED.
const EnvPrefix = "THERMOSIM_"

const (
	DefaultName = "thermosim"
	DefaultSeed = 42
	DefaultRuns = 10
)

type Config struct {
	Name          string             `koanf:"name" yaml:"name"`
	Seed          int64              `koanf:"seed" yaml:"seed"`
	Runs          int                `koanf:"runs" yaml:"runs"`
	StopAtBoiling bool               `koanf:"stop_at_boiling" yaml:"stop_at_boiling"`
	DerivePower   bool               `koanf:"derive_power" yaml:"derive_power"`
	Params        thermal.Parameters `koanf:"params" yaml:"params"`
	Events        EventsConfig       `koanf:"events" yaml:"events"`
	Ice           IceConfig          `koanf:"ice" yaml:"ice"`
}

type EventsConfig struct {
	Enabled      bool    `koanf:"enabled" yaml:"enabled"`
	Probability  float64 `koanf:"probability" yaml:"probability"`
	MagnitudeMin float64 `koanf:"magnitude_min" yaml:"magnitude_min"`
	MagnitudeMax float64 `koanf:"magnitude_max" yaml:"magnitude_max"`
	DurationMin  int     `koanf:"duration_min" yaml:"duration_min"`
	DurationMax  int     `koanf:"duration_max" yaml:"duration_max"`
	Floor        float64 `koanf:"floor" yaml:"floor"`
}

type IceConfig struct {
	Enabled               bool    `koanf:"enabled" yaml:"enabled"`
	Mass                  float64 `koanf:"mass" yaml:"mass"`
	InitialTemperature    float64 `koanf:"initial_temperature" yaml:"initial_temperature"`
	SpecificHeat          float64 `koanf:"specific_heat" yaml:"specific_heat"`
	LatentHeat            float64 `koanf:"latent_heat" yaml:"latent_heat"`
	ConvectionCoefficient float64 `koanf:"convection_coefficient" yaml:"convection_coefficient"`
	Surface               float64 `koanf:"surface" yaml:"surface"`
	IntroductionTime      float64 `koanf:"introduction_time" yaml:"introduction_time"`
}

func DefaultConfig() *Config {
	ev := sim.DefaultEventConfig()
	ice := sim.DefaultIceConfig()
	return &Config{
		Name:   DefaultName,
		Seed:   DefaultSeed,
		Runs:   DefaultRuns,
		Params: thermal.DefaultParameters(),
		Events: EventsConfig{
			Probability:  ev.Probability,
			MagnitudeMin: ev.MagnitudeMin,
			MagnitudeMax: ev.MagnitudeMax,
			DurationMin:  ev.DurationMin,
			DurationMax:  ev.DurationMax,
			Floor:        ev.Floor,
		},
		Ice: IceConfig{
			Mass:                  ice.Mass,
			InitialTemperature:    ice.InitialTemperature,
			SpecificHeat:          ice.SpecificHeat,
			LatentHeat:            ice.LatentHeat,
			ConvectionCoefficient: ice.ConvectionCoefficient,
			Surface:               ice.Surface,
			IntroductionTime:      ice.IntroductionTime,
		},
	}
}

// Load layers base, then the file at path (.yaml/.yml/.json, skipped when
// path is empty), then THERMOSIM_* environment variables.
func Load(path string, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(base, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyTransform(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return koanfyaml.Parser(), nil
	case ".json":
		return koanfjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
}

var sections = []string{"params", "events", "ice"}

// envKeyTransform maps PARAMS_AMBIENT_TEMPERATURE to
// params.ambient_temperature. Keys outside a known section pass through
// lowercased.
func envKeyTransform(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, s := range sections {
		if rest, ok := strings.CutPrefix(key, s+"_"); ok && rest != "" {
			return s + "." + rest
		}
	}
	return key
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToExperiment converts the configuration into a runnable experiment.
func (c *Config) ToExperiment() experiment.Config {
	p := c.Params
	if c.DerivePower && p.Resistance > 0 {
		p.Power = thermal.PowerFromVoltage(p.Voltage, p.Resistance)
	}

	out := experiment.Config{
		Name:          c.Name,
		Params:        p,
		StopAtBoiling: c.StopAtBoiling,
		Seed:          c.Seed,
	}
	if c.Events.Enabled {
		out.Events = &sim.EventConfig{
			Probability:  c.Events.Probability,
			MagnitudeMin: c.Events.MagnitudeMin,
			MagnitudeMax: c.Events.MagnitudeMax,
			DurationMin:  c.Events.DurationMin,
			DurationMax:  c.Events.DurationMax,
			Floor:        c.Events.Floor,
		}
	}
	if c.Ice.Enabled {
		out.Ice = &sim.IceConfig{
			Mass:                  c.Ice.Mass,
			InitialTemperature:    c.Ice.InitialTemperature,
			SpecificHeat:          c.Ice.SpecificHeat,
			LatentHeat:            c.Ice.LatentHeat,
			ConvectionCoefficient: c.Ice.ConvectionCoefficient,
			Surface:               c.Ice.Surface,
			IntroductionTime:      c.Ice.IntroductionTime,
		}
	}
	return out
}
