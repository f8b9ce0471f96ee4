package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show per-symbol cost metrics (no live prices)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		ms, err := a.svc.ComputeMetrics()
		if err != nil {
			return err
		}
		if len(ms) == 0 {
			fmt.Println("No trades recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tAVG PRICE\tTOTAL QTY\tTOTAL COST")
		for _, m := range ms {
			fmt.Fprintf(w, "%s\t%.4f\t%v\t%.2f\n", m.Symbol, m.AvgPrice, m.TotalQty, m.TotalCost)
		}
		return w.Flush()
	},
}
