package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var valuationCmd = &cobra.Command{
	Use:   "valuation",
	Short: "Show per-symbol metrics with live prices and ROI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		rows, err := a.svc.ComputeValuedMetrics(context.Background())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No trades recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tAVG PRICE\tCURRENT\tROI %\tTOTAL QTY\tTOTAL COST")
		for _, v := range rows {
			current, roi := "-", "-"
			if v.Resolved() {
				current = fmt.Sprintf("%.4f", v.CurrentPrice)
				roi = fmt.Sprintf("%+.2f", v.ROIPct)
			}
			fmt.Fprintf(w, "%s\t%.4f\t%s\t%s\t%v\t%.2f\n",
				v.Symbol, v.AvgPrice, current, roi, v.TotalQty, v.TotalCost)
		}
		return w.Flush()
	},
}
