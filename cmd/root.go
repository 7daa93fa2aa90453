package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/request-sim/request-sim/sim"
	"github.com/request-sim/request-sim/sim/trace"
	"github.com/request-sim/request-sim/sim/workload"
)

var (
	// CLI flags for the run command
	requestFile string // Request CSV file
	numServers  int    // Number of servers
	logLevel    string // Log verbosity level
	configPath  string // Optional YAML run config
	traceLevel  string // Decision trace level
	showSummary bool   // Print extended statistics
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "request-sim",
	Short: "Discrete-time simulator of request wait times at service stations",
}

// runCmd executes the simulation using parameters from CLI flags and the
// optional config file. Errors are returned to Execute, which exits non-zero.
var runCmd = &cobra.Command{
	Use:          "run",
	Short:        "Simulate the requests in a CSV file and report the average wait",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		var file runConfigFile
		if configPath != "" {
			var err error
			file, err = loadRunConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading run config: %w", err)
			}
		}
		flagCfg := RunConfig{File: requestFile, Servers: numServers, Trace: traceLevel, Summary: showSummary}
		cfg := mergeRunConfig(file, flagCfg, cmd.Flags().Changed)

		if err := runSimulation(cfg, cmd.OutOrStdout()); err != nil {
			return err
		}
		logrus.Info("Simulation complete.")
		return nil
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runSimulation loads the requests named by cfg, runs the simulator the
// server count selects, and writes the report to w.
func runSimulation(cfg RunConfig, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	requests, err := workload.LoadRequests(cfg.File)
	if err != nil {
		return err
	}
	logrus.Infof("Starting simulation of %d requests with %d server(s)", len(requests), cfg.Servers)

	var st *trace.SimulationTrace
	if trace.TraceLevel(cfg.Trace) == trace.TraceLevelDecisions {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	}

	var res *sim.Result
	if cfg.Servers == 1 {
		res = sim.NewSingleServerSimulator(requests, sim.WithTrace(st)).Run()
	} else {
		s, err := sim.NewMultiServerSimulator(requests, cfg.Servers, sim.WithTrace(st))
		if err != nil {
			return err
		}
		logrus.Infof("Partitioned requests round-robin over %d backlogs", s.NumServers())
		res = s.Run()
	}

	res.Print(w)
	if cfg.Summary {
		res.PrintSummary(w)
	}
	if st != nil {
		if err := printTraceSummary(w, trace.Summarize(st)); err != nil {
			return err
		}
	}
	return nil
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling trace summary: %w", err)
	}
	_, _ = fmt.Fprintln(w, "=== Trace Summary ===")
	_, err = w.Write(data)
	return err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&requestFile, "file", "", "Input CSV file containing requests (arrival,label,processing)")
	runCmd.Flags().IntVar(&numServers, "servers", 1, "Number of servers (1 = single shared server)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML run config (file, servers, trace, summary)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().BoolVar(&showSummary, "summary", false, "Print wait distribution and per-server statistics")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
