package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vialsim/vialsim/sim/schedule"
	"github.com/vialsim/vialsim/sim/sweep"
)

var (
	// CLI flags shared across subcommands
	logLevel string // Log verbosity level

	// CLI flags for the optimize and inspect subcommands
	scenarioPath  string // Path to the scenario YAML file
	workers       int    // Number of evaluation goroutines
	topK          int    // Leaderboard size, 0 disables
	maxCandidates int64  // Refuse sweeps larger than this, negative lifts the limit
	withStats     bool   // Collect waste distribution statistics
	format        string // Report format
	csvPath       string // Optional leaderboard CSV destination

	// CLI flags for the init subcommand
	outPath string // Destination for the generated scenario
	force   bool   // Overwrite an existing destination
)

// envConfig carries settings read from the environment. Flags set
// explicitly on the command line take precedence.
type envConfig struct {
	LogLevel string `env:"VIALSIM_LOG"`
	Workers  int    `env:"VIALSIM_WORKERS"`
}

// validFormats lists the accepted report formats.
var validFormats = map[string]bool{
	"text": true,
	"json": true,
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vialsim",
	Short: "Search dosing schedules that minimize shared-vial waste",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var ec envConfig
		if err := env.Parse(&ec); err != nil {
			return fmt.Errorf("parsing environment: %w", err)
		}
		if ec.LogLevel != "" && !cmd.Flags().Changed("log") {
			logLevel = ec.LogLevel
		}
		if ec.Workers > 0 && !cmd.Flags().Changed("workers") {
			workers = ec.Workers
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// optimizeCmd sweeps the candidate space of a scenario
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Evaluate every candidate schedule and report the least wasteful",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runOptimize(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("optimize: %v", err)
		}
	},
}

// inspectCmd sizes a scenario without sweeping it
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the candidate space a scenario would generate",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("inspect: %v", err)
		}
	},
}

// initCmd writes a commented starter scenario
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented example scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInit(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("init: %v", err)
		}
	},
}

// runOptimize loads the scenario, sweeps its candidate space, and
// renders the outcome to w.
func runOptimize(w io.Writer) error {
	if !validFormats[format] {
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}
	spec, err := LoadScenarioSpec(scenarioPath)
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	space, err := schedule.New(spec.Params(), spec.Persons())
	if err != nil {
		return err
	}
	logrus.Infof("scenario %s: %d candidate schedule(s) over %d person(s), %d excluded by capacity",
		scenarioPath, space.Size(), len(spec.People), space.Excluded())

	opt := sweep.New(sweep.Config{
		Workers:       workers,
		TopK:          topK,
		MaxCandidates: maxCandidates,
		KeepWaste:     withStats,
	})
	start := time.Now()
	outcome, err := opt.Run(context.Background(), space)
	if err != nil {
		return err
	}
	logrus.Infof("sweep of %d candidate(s) finished in %v", outcome.Evaluated, time.Since(start))

	report := NewReport(scenarioPath, spec.Params(), spec.Persons(), outcome)
	if format == "json" {
		if err := report.RenderJSON(w); err != nil {
			return err
		}
	} else {
		report.RenderText(w)
	}
	if csvPath != "" {
		if err := WriteLeaderboardCSV(csvPath, spec.Persons(), outcome); err != nil {
			return err
		}
		logrus.Infof("leaderboard written to %s", csvPath)
	}
	return nil
}

// runInspect sizes the scenario's candidate space without running it.
func runInspect(w io.Writer) error {
	spec, err := LoadScenarioSpec(scenarioPath)
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	space, err := schedule.New(spec.Params(), spec.Persons())
	if err != nil {
		return err
	}
	persons := spec.Persons()
	fmt.Fprintf(w, "scenario: %s\n", scenarioPath)
	fmt.Fprintf(w, "vial capacity %g mL, horizon %d day(s)\n", spec.VialCapacity, spec.Horizon)
	for i, n := range space.PairCounts() {
		fmt.Fprintf(w, "  %s: %d (dose, interval) pair(s)\n", persons[i].Name, n)
	}
	if space.Exact() {
		fmt.Fprintf(w, "candidates: %d (%d excluded by capacity)\n", space.Size(), space.Excluded())
	} else {
		fmt.Fprintln(w, "candidates: exceeds int64, narrow the ranges before optimizing")
	}
	return nil
}

// runInit writes the sample scenario to the configured path.
func runInit(w io.Writer) error {
	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
		}
	}
	if err := os.WriteFile(outPath, []byte(sampleScenario), 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", outPath)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	optimizeCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the scenario YAML file")
	_ = optimizeCmd.MarkFlagRequired("scenario")
	optimizeCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "Evaluation goroutines")
	optimizeCmd.Flags().IntVar(&topK, "top", 5, "Leaderboard size (0 disables)")
	optimizeCmd.Flags().Int64Var(&maxCandidates, "max-candidates", sweep.DefaultMaxCandidates, "Refuse sweeps larger than this (negative lifts the limit)")
	optimizeCmd.Flags().BoolVar(&withStats, "stats", false, "Report waste distribution statistics")
	optimizeCmd.Flags().StringVar(&format, "format", "text", "Report format (text, json)")
	optimizeCmd.Flags().StringVar(&csvPath, "csv", "", "Write the leaderboard to a CSV file")

	inspectCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the scenario YAML file")
	_ = inspectCmd.MarkFlagRequired("scenario")

	initCmd.Flags().StringVar(&outPath, "out", "scenario.yaml", "Destination path")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing destination")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
}
