package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

type Registry struct {
	metrics map[string]func(thermal.Parameters) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(thermal.Parameters) sim.Metric),
	}

	r.metrics["max_temperature"] = func(thermal.Parameters) sim.Metric { return metrics.NewMaxTemperature() }
	r.metrics["mean_temperature"] = func(thermal.Parameters) sim.Metric { return metrics.NewMeanTemperature() }
	r.metrics["temperature_drop"] = func(thermal.Parameters) sim.Metric { return metrics.NewTemperatureDrop() }
	r.metrics["time_to_100"] = func(thermal.Parameters) sim.Metric { return metrics.NewTimeToReach(thermal.BoilingPoint) }
	r.metrics["heater_energy"] = func(p thermal.Parameters) sim.Metric { return metrics.NewHeaterEnergy(p.Power) }

	return r
}

func (r *Registry) GetMetric(name string, p thermal.Parameters) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(p), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(p thermal.Parameters) []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](p))
	}
	return out
}
