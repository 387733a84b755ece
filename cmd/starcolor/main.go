package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/askiada/go-starcolor/internal/app"
	"github.com/askiada/go-starcolor/internal/config"
)

var (
	input    string
	output   string
	cfgFile  string
	drawFile string
	measure  bool
	verbose  bool
	timeout  time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "starcolor",
	Short: "Estimate star temperatures and display colours from catalogue photometry",
	Long: `starcolor reads a CSV of star names, resolves their UBV photometry from
public catalogue services (VizieR, with a SIMBAD fallback), estimates an
effective temperature from the B-V colour index and maps it to an approximate
blackbody colour. One CSV row is written per star; stars that cannot be
resolved are marked and never abort the batch.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return errors.Wrap(err, "unable to initialize logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Timeout = config.Duration(timeout)
		}

		return app.Run(cmd.Context(), app.Options{
			Input:    input,
			Output:   output,
			Config:   cfg,
			DrawFile: drawFile,
			Measure:  measure,
			Logger:   logger,
		})
	},
}

func init() {
	rootCmd.Flags().StringVarP(&input, "input", "i", "blue_stars.csv", "CSV file with the star list")
	rootCmd.Flags().StringVarP(&output, "output", "o", "blue_stars_results.csv", "output CSV file")
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "YAML file overriding endpoints and catalogue cascade")
	rootCmd.Flags().StringVar(&drawFile, "draw", "", "write a DOT rendering of the pipeline graph to this file")
	rootCmd.Flags().BoolVar(&measure, "measure", false, "log per-step timings after the run")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for each catalogue request")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
