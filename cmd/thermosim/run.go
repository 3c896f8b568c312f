package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/report"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/thermal"
)

func setup(cmd *cobra.Command) (*config.Config, *experiment.Experiment, *log.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	expCfg := cfg.ToExperiment()
	exp := experiment.New(expCfg)
	registry := experiment.NewRegistry()
	if err := exp.Setup(registry.DefaultMetrics(expCfg.Params), logger); err != nil {
		return nil, nil, nil, err
	}
	return cfg, exp, logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, exp, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if progress > 0 {
		exp.GetSimulator().AddObserver(sim.NewProgressObserver(logger, progress))
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running simulation", "name", cfg.Name, "seed", cfg.Seed)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	params := exp.Model().Params
	meta := report.NewMetadata(cfg.Name, cfg.Seed, params, result)

	if csvOut != "" {
		if err := writeFile(csvOut, func(f *os.File) error { return report.WriteCSV(f, result) }); err != nil {
			return err
		}
	}
	if jsonOut != "" {
		if err := writeFile(jsonOut, func(f *os.File) error { return report.WriteJSON(f, meta, result) }); err != nil {
			return err
		}
	}

	logger.Debug("simulation complete", "elapsed", elapsed)
	fmt.Println(renderResult(exp.Model(), meta, result))
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func renderResult(model *thermal.Model, meta report.Metadata, result *sim.Result) string {
	finalTime, finalTemp := result.Final()
	rows := []row{
		kv("run id", "%s", meta.ID),
		kv("steps", "%d", result.StepsTaken),
		kv("final time", "%.0f s (%.1f min)", finalTime, finalTime/60),
		{label: "final temperature", value: temperatureStyle(finalTemp).Render(fmt.Sprintf("%.2f °C", finalTemp))},
		kv("boiled", "%t", result.Boiled),
		kv("ideal time to boil", "%.0f s", model.IdealTimeToBoil()),
	}
	if len(result.Events) > 0 {
		rows = append(rows, kv("cooling events", "%d", len(result.Events)))
	}
	if result.Ice != nil {
		if result.Ice.Solid {
			rows = append(rows, kv("ice left", "%.4f kg at %.2f °C", result.Ice.Mass, result.Ice.Temperature))
		} else {
			rows = append(rows, kv("ice melted at", "%.0f s", result.Ice.MeltedAt))
		}
		rows = append(rows, kv("water mass", "%.4f kg", result.Ice.WaterMass))
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, kv(name, "%.4f", result.Metrics[name]))
	}

	return renderPanel(meta.Name, rows)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, exp, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if !cfg.Events.Enabled {
		logger.Warn("cooling events are disabled; every run will be identical")
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running ensemble", "runs", cfg.Runs, "seed", cfg.Seed)
	results, err := exp.RunEnsemble(ctx, cfg.Runs)
	if err != nil {
		return err
	}

	summary := sim.Summarize(results)
	if yamlOut != "" {
		if err := writeFile(yamlOut, func(f *os.File) error { return report.WriteSummaryYAML(f, summary) }); err != nil {
			return err
		}
	}

	fmt.Println(renderPanel(cfg.Name+" ensemble", []row{
		kv("runs", "%d", summary.Runs),
		kv("seeds", "%d..%d", cfg.Seed, cfg.Seed+int64(summary.Runs)-1),
		kv("boiled", "%d", summary.Boiled),
		kv("cooling events", "%d", summary.Events),
		kv("final time", "%.1f ± %.1f s", summary.MeanFinalTime, summary.StdFinalTime),
		kv("final temperature", "%.2f ± %.2f °C", summary.MeanFinalTemperature, summary.StdFinalTemperature),
	}))
	return nil
}

func showEquilibrium(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	model, err := thermal.New(cfg.ToExperiment().Params)
	if err != nil {
		return err
	}

	rows := []row{
		kv("power", "%.1f W", model.Params.Power),
		kv("U", "%.4f W/(m²·K)", model.Derived.U),
		kv("area", "%.5f m²", model.Derived.TotalArea),
		kv("loss coefficient", "%.4f W/K", model.Derived.LossCoefficient()),
		kv("rise per second", "%.5f °C/s", model.RisePerSecond()),
		kv("ideal time to boil", "%.0f s", model.IdealTimeToBoil()),
	}

	teq, err := model.EquilibriumTemperature()
	switch {
	case errors.Is(err, thermal.ErrNoEquilibrium):
		rows = append(rows, kv("equilibrium", "none (no losses)"))
	case err != nil:
		return err
	default:
		rows = append(rows, row{label: "equilibrium", value: temperatureStyle(teq).Render(fmt.Sprintf("%.2f °C", teq))})
	}

	fmt.Println(renderPanel(cfg.Name, rows))
	return nil
}
