package sim

import (
	"context"
	"fmt"
	"math"
)

// Ensemble repeats a run over consecutive seeds. Runs execute one after the
// other on the same simulator.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("%w: ensemble needs at least one run, got %d", ErrInvalidConfig, e.numRuns)
	}

	results := make([]*Result, 0, e.numRuns)
	for i := 0; i < e.numRuns; i++ {
		seed := e.seedStart + int64(i)
		res, err := e.base.Run(ctx, cfg, NewRand(seed))
		if err != nil {
			return nil, fmt.Errorf("run %d (seed %d): %w", i, seed, err)
		}
		results = append(results, res)
	}

	return results, nil
}

type Summary struct {
	Runs                 int     `json:"runs" yaml:"runs"`
	Boiled               int     `json:"boiled" yaml:"boiled"`
	Events               int     `json:"events" yaml:"events"`
	MeanFinalTime        float64 `json:"mean_final_time" yaml:"mean_final_time"`
	StdFinalTime         float64 `json:"std_final_time" yaml:"std_final_time"`
	MeanFinalTemperature float64 `json:"mean_final_temperature" yaml:"mean_final_temperature"`
	StdFinalTemperature  float64 `json:"std_final_temperature" yaml:"std_final_temperature"`
}

// Summarize reports population mean and standard deviation of the final
// sample of each run.
func Summarize(results []*Result) Summary {
	sum := Summary{Runs: len(results)}
	if len(results) == 0 {
		return sum
	}

	times := make([]float64, len(results))
	temps := make([]float64, len(results))
	for i, r := range results {
		times[i], temps[i] = r.Final()
		sum.Events += len(r.Events)
		if r.Boiled {
			sum.Boiled++
		}
	}

	sum.MeanFinalTime, sum.StdFinalTime = meanStd(times)
	sum.MeanFinalTemperature, sum.StdFinalTemperature = meanStd(temps)
	return sum
}

func meanStd(xs []float64) (float64, float64) {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	variance /= float64(len(xs))

	return mean, math.Sqrt(variance)
}
