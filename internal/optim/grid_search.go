package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/thermosim/internal/experiment"
)

// Point is one evaluated combination of the swept parameters.
type Point struct {
	Values map[string]float64
	Metric float64
	Err    error
}

// GridSearch evaluates a metric over the cartesian product of parameter
// ranges.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs one experiment per grid point. Failed points are kept with
// their error; only a canceled context stops the search early.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) ([]Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("grid search: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	points := make([]Point, 0)
	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &points)
	return points, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	points *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		point := Point{Values: current, Metric: math.NaN()}
		defer func() { *points = append(*points, point) }()

		exp, err := buildExperiment(current)
		if err != nil {
			point.Err = err
			return nil
		}

		result, err := exp.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			point.Err = err
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			point.Err = fmt.Errorf("metric %q not recorded", metricName)
			return nil
		}
		point.Metric = val
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, points); err != nil {
			return err
		}
	}
	return nil
}

// Best returns the point with the smallest metric. Failed points and negative
// values, which mark thresholds that were never reached, are skipped.
func Best(points []Point) (Point, bool) {
	var best Point
	found := false
	for _, p := range points {
		if p.Err != nil || math.IsNaN(p.Metric) || p.Metric < 0 {
			continue
		}
		if !found || p.Metric < best.Metric {
			best = p
			found = true
		}
	}
	return best, found
}

// ParseRange parses "name=v1,v2,..." or "name=from:to:count" into a
// parameter name and its values.
func ParseRange(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("invalid range %q: want name=values", s)
	}

	if parts := strings.Split(list, ":"); len(parts) == 3 {
		from, err1 := strconv.ParseFloat(parts[0], 64)
		to, err2 := strconv.ParseFloat(parts[1], 64)
		count, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || count < 2 {
			return "", nil, fmt.Errorf("invalid range %q: want from:to:count with count >= 2", s)
		}
		values := make([]float64, count)
		for i := range values {
			values[i] = from + (to-from)*float64(i)/float64(count-1)
		}
		return name, values, nil
	}

	fields := strings.Split(list, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid range %q: %w", s, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}
