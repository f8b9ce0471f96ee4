package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Buy-side portfolio tracker for stocks and crypto",
	Long: `A CLI for tracking buy-side trade records of stocks and crypto,
computing per-symbol metrics (cost-weighted average price, ROI against the
live market price) and checking threshold price alerts.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "directory containing config.yml")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(valuationCmd)
	rootCmd.AddCommand(alertCmd)
	rootCmd.AddCommand(exportCmd)
}
