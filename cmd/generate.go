package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/request-sim/request-sim/sim/workload"
)

var (
	genCount          int
	genRate           float64
	genProcessingMean float64
	genSeed           uint64
	genOutput         string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic request CSV",
	Long:  "Generate a request CSV with Poisson arrivals per tick and exponential processing times. Output goes to stdout unless --out is given.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		records, err := workload.Generate(workload.GeneratorConfig{
			Count:          genCount,
			Rate:           genRate,
			ProcessingMean: genProcessingMean,
			Seed:           genSeed,
		})
		if err != nil {
			logrus.Fatalf("Workload generation failed: %v", err)
		}

		if genOutput == "" {
			if err := workload.WriteRecords(os.Stdout, records); err != nil {
				logrus.Fatalf("Writing requests failed: %v", err)
			}
			return
		}
		if err := workload.ExportRecords(genOutput, records); err != nil {
			logrus.Fatalf("Writing requests failed: %v", err)
		}
		logrus.Infof("Wrote %d requests to %s", len(records), genOutput)
	},
}

func init() {
	generateCmd.Flags().IntVar(&genCount, "count", 100, "Number of requests")
	generateCmd.Flags().Float64Var(&genRate, "rate", 0.5, "Mean request arrivals per tick")
	generateCmd.Flags().Float64Var(&genProcessingMean, "processing-mean", 3, "Mean processing time in ticks")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 42, "Seed for request generation")
	generateCmd.Flags().StringVar(&genOutput, "out", "", "Output CSV path (default stdout)")
	generateCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(generateCmd)
}
