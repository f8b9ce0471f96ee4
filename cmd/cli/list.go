package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listSymbol string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded trades, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		trades, err := a.svc.ListTrades(listSymbol)
		if err != nil {
			return err
		}
		if len(trades) == 0 {
			fmt.Println("No trades recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSYMBOL\tQUANTITY\tPRICE\tDATE")
		for _, t := range trades {
			fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%s\n",
				t.ID, t.Symbol, t.Quantity, t.Price, t.Date.Format(dateLayout))
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&listSymbol, "symbol", "", "only show trades for this symbol")
}
