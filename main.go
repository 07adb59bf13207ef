package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jaglab/tascooc/logger"
	"github.com/jaglab/tascooc/pkg/pipeline"
)

const VERSION = "0.1.0"

var (
	tascooc_data string
	config_path  string
	outdir_flag  string
)

func main() {

	// Establish logger
	LOG_LEVEL := logger.ParseLevel(os.Getenv("TASCOOC_LOG_LEVEL"))

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	tascooc_data = os.Getenv("TASCOOC_DATA")

	if tascooc_data == "" {
		logger.Warn("No local environment (TASCOOC_DATA), using default value (./data)")
		tascooc_data = "./data"
	}

	logger.Info("Start:", zap.String("Version", VERSION))

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("Command failed:", zap.String("error message", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {

	rootCmd := &cobra.Command{
		Use:     "tascooc",
		Short:   "Co-occurrence analysis of TA systems and resistance determinants",
		Version: VERSION,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis described by a YAML config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis()
		},
	}
	runCmd.Flags().StringVarP(&config_path, "config", "c", "analysis.yaml", "analysis configuration file")
	runCmd.Flags().StringVarP(&outdir_flag, "outdir", "o", "", "override the configured output directory")

	rootCmd.AddCommand(runCmd)

	return rootCmd
}

func runAnalysis() error {

	cfg, err := pipeline.LoadConfig(config_path)
	if err != nil {
		return err
	}

	if outdir_flag != "" {
		cfg.OutDir = outdir_flag
	}
	cfg.ResolvePaths(tascooc_data)

	logger.Info("Config loaded", zap.String("config", config_path), zap.String("outdir", cfg.OutDir))

	res, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	printSummary(res)
	return nil
}

// printSummary writes the run summary for the terminal, colored the
// way a quick visual scan wants it.
func printSummary(res *pipeline.Result) {

	head := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	head.Printf("Run %s finished\n", res.RunID)
	good.Printf("  genomes analysed:        %d\n", len(res.Assemblies))
	good.Printf("  TA/drug pairs tabulated: %d\n", len(res.Pairs))
	good.Printf("  co-occurrence fraction:  %.3f\n", res.Fraction)
	good.Printf("  max |log2 ratio|:        %.2f\n", res.AbsMax)

	if res.SkippedRows > 0 {
		warn.Printf("  skipped hit rows:        %d (see log)\n", res.SkippedRows)
	}

	fmt.Printf("  pair table:  %s\n", res.PairTable)
	fmt.Printf("  ratio table: %s\n", res.RatioTable)
	if res.Heatmap != "" {
		fmt.Printf("  heatmap:     %s\n", res.Heatmap)
	}
}
