package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/config"
)

var (
	logLevel   string
	configFile string
	preset     string

	mass          float64
	power         float64
	voltage       float64
	ambient       float64
	initial       float64
	duration      float64
	dt            float64
	seed          int64
	stopAtBoiling bool
	withIce       bool
	withEvents    bool

	csvOut   string
	jsonOut  string
	progress float64

	runs    int
	yamlOut string
)

// main registers the thermosim commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "thermosim",
		Short:         "insulated water heater simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (.yaml/.yml/.json)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write the temperature series to a CSV file")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write the run to a JSON file")
	runCmd.Flags().Float64Var(&progress, "progress", 0, "log progress every N simulated seconds")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "repeat a stochastic run over consecutive seeds",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addParamFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", config.DefaultRuns, "number of runs")
	ensembleCmd.Flags().StringVar(&yamlOut, "yaml", "", "write the summary to a YAML file")

	equilibriumCmd := &cobra.Command{
		Use:   "equilibrium",
		Short: "show derived constants and the equilibrium temperature",
		Args:  cobra.NoArgs,
		RunE:  showEquilibrium,
	}
	addParamFlags(equilibriumCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, ensembleCmd, equilibriumCmd, newSweepCommand(), presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", 0, "water mass in kg")
	cmd.Flags().Float64Var(&power, "power", 0, "heater power in W")
	cmd.Flags().Float64Var(&voltage, "voltage", 0, "supply voltage in V, derives power as V²/R")
	cmd.Flags().Float64Var(&ambient, "ambient", 0, "ambient temperature in °C")
	cmd.Flags().Float64Var(&initial, "initial", 0, "initial water temperature in °C")
	cmd.Flags().Float64Var(&duration, "time", 0, "simulated duration in s")
	cmd.Flags().Float64Var(&dt, "dt", 0, "tick length in s")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().BoolVar(&stopAtBoiling, "stop-at-boiling", false, "stop once the water reaches 100 °C")
	cmd.Flags().BoolVar(&withIce, "ice", false, "add ice to the water")
	cmd.Flags().BoolVar(&withEvents, "events", false, "enable stochastic cooling events")
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "thermosim",
	})
	logger.SetLevel(level)
	return logger, nil
}

// resolveConfig layers preset, config file and environment, then applies the
// flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	base := config.DefaultConfig()
	if preset != "" {
		base = config.GetPreset(preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	cfg, err := config.Load(configFile, base)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		cfg.Params.Mass = mass
	}
	if flags.Changed("power") {
		cfg.Params.Power = power
		cfg.DerivePower = false
	}
	if flags.Changed("voltage") {
		cfg.Params.Voltage = voltage
		cfg.DerivePower = true
	}
	if flags.Changed("ambient") {
		cfg.Params.AmbientTemperature = ambient
	}
	if flags.Changed("initial") {
		cfg.Params.InitialTemperature = initial
	}
	if flags.Changed("time") {
		cfg.Params.Duration = duration
	}
	if flags.Changed("dt") {
		cfg.Params.Dt = dt
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("stop-at-boiling") {
		cfg.StopAtBoiling = stopAtBoiling
	}
	if flags.Changed("ice") {
		cfg.Ice.Enabled = withIce
	}
	if flags.Changed("events") {
		cfg.Events.Enabled = withEvents
	}
	if flags.Changed("runs") {
		cfg.Runs = runs
	}
	return cfg, nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
