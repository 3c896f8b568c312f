package config

import (
	"fmt"
	"math"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Override returns a copy of cfg with the given dotted keys replaced, e.g.
// "params.power" or "ice.mass". Unknown keys are an error.
func Override(cfg *Config, values map[string]any) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	for key, v := range values {
		if !k.Exists(key) {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
		switch k.Get(key).(type) {
		case map[string]any:
			return nil, fmt.Errorf("config key %q is a section", key)
		case int, int64:
			n, ok := integral(v)
			if !ok {
				return nil, fmt.Errorf("config key %q needs an integer, got %v", key, v)
			}
			v = n
		}
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}

	var out Config
	if err := k.UnmarshalWithConf("", &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &out, nil
}

func integral(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}
