package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/optim"
)

var (
	sweepRanges []string
	sweepMetric string
)

func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "evaluate a metric over a grid of configuration values",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addParamFlags(cmd)
	cmd.Flags().StringArrayVar(&sweepRanges, "vary", nil, "key=v1,v2,... or key=from:to:count (repeatable)")
	cmd.Flags().StringVar(&sweepMetric, "metric", "time_to_100", "metric to minimize")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepRanges) == 0 {
		return fmt.Errorf("at least one --vary is required")
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sweepRanges))
	ranges := make([][]float64, 0, len(sweepRanges))
	for _, s := range sweepRanges {
		name, values, err := optim.ParseRange(s)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	registry := experiment.NewRegistry()
	build := func(values map[string]float64) (*experiment.Experiment, error) {
		overrides := make(map[string]any, len(values))
		for k, v := range values {
			overrides[k] = v
		}
		cfg, err := config.Override(base, overrides)
		if err != nil {
			return nil, err
		}
		expCfg := cfg.ToExperiment()
		exp := experiment.New(expCfg)
		if err := exp.Setup(registry.DefaultMetrics(expCfg.Params), nil); err != nil {
			return nil, err
		}
		return exp, nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running sweep", "parameters", names, "metric", sweepMetric)
	points, err := optim.NewGridSearch(names, ranges).Search(ctx, build, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, p := range points {
		cols := make([]string, 0, len(names)+1)
		for _, name := range names {
			cols = append(cols, fmt.Sprintf("%g", p.Values[name]))
		}
		switch {
		case p.Err != nil:
			cols = append(cols, "error: "+p.Err.Error())
		case math.IsNaN(p.Metric):
			cols = append(cols, "-")
		default:
			cols = append(cols, fmt.Sprintf("%.4f", p.Metric))
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	best, ok := optim.Best(points)
	if !ok {
		fmt.Println("no point produced a usable metric")
		return nil
	}
	keys := make([]string, 0, len(best.Values))
	for k := range best.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([]row, 0, len(keys)+1)
	for _, k := range keys {
		rows = append(rows, kv(k, "%g", best.Values[k]))
	}
	rows = append(rows, kv(sweepMetric, "%.4f", best.Metric))
	fmt.Println(renderPanel("best", rows))
	return nil
}
