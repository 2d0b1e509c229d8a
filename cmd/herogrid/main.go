package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/herogrid/internal/config"
	"github.com/san-kum/herogrid/internal/gui"
	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/scenario"
	"github.com/san-kum/herogrid/internal/tui"
	"github.com/san-kum/herogrid/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	logFile    string
	fps        int
	theme      string
	threshold  int
	noTrigger  bool
	// run
	width      float64
	height     float64
	noSave     bool
	snapshot   string
	snapshotAt time.Duration
	columns    []string
	// sweep
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	sweepMetric string
	// export
	exportFormat string
	exportOut    string
	exportColumn string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "herogrid",
		Short:        "interactive tile grid that follows the pointer",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".herogrid", "data directory for recorded runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&debug, "debug", false, "write lifecycle logs")
	pf.StringVar(&logFile, "log-file", "herogrid.log", "log file for the terminal host")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	pf.IntVar(&threshold, "threshold", input.DefaultThreshold, "presses before the grid disperses")
	pf.BoolVar(&noTrigger, "no-trigger", false, "track the pointer only, ignore presses")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the grid in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the grid in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "replay a built-in or yaml scenario headlessly and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&width, "width", 0, "viewport width when the scenario sets none")
	runCmd.Flags().Float64Var(&height, "height", 0, "viewport height when the scenario sets none")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&snapshot, "snapshot", "", "write an svg of the grid to this file")
	runCmd.Flags().DurationVar(&snapshotAt, "snapshot-at", time.Second, "scenario time of the snapshot")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "replay a scenario across values of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", fmt.Sprintf("parameter to vary %v", scenario.Params()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.7, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.95, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "mean_displacement", "metric to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json, csv or svg")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportColumn, "column", "mean_offset", "series for svg export")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios [name]",
		Short: "list built-in scenarios, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showScenarios,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded frame series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "columns", []string{"mean_offset", "peak_offset", "kinetic"}, "series to plot")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "herogrid.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, sweepCmd, scenariosCmd, listCmd, plotCmd, exportCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and changed flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = theme
	}
	if flags.Changed("threshold") {
		cfg.Interaction.Threshold = threshold
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stderrLogger logs to stderr when debugging, otherwise nowhere.
func stderrLogger() *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "herogrid ", log.LstdFlags|log.Lmicroseconds)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := log.New(io.Discard, "", 0)
	if debug {
		// the alt screen owns stdout, so logs go to a file
		f, err := tea.LogToFile(logFile, "herogrid")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}
	return tui.Run(tui.Options{Config: cfg, Logger: logger, NoTrigger: noTrigger})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{Config: cfg, Logger: stderrLogger(), NoTrigger: noTrigger})
}
