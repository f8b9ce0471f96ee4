package main

import (
	"fmt"

	"portfolio-tracker-go/internal/export"

	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the trades and metrics tables to CSV files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		trades, err := a.svc.ListTrades("")
		if err != nil {
			return err
		}
		ms, err := a.svc.ComputeMetrics()
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			dir = a.cfg.Export.Dir
		}
		tradesPath, metricsPath, err := export.Files(dir, trades, ms)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d trades to %s\n", len(trades), tradesPath)
		fmt.Printf("Exported %d metric rows to %s\n", len(ms), metricsPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (defaults to export.dir from config)")
}
