package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02 15:04"

var addDate string

var addCmd = &cobra.Command{
	Use:   "add <symbol> <quantity> <price>",
	Short: "Record a buy trade",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", args[2], err)
		}

		var date time.Time
		if addDate != "" {
			date, err = time.Parse(dateLayout, addDate)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected %q: %w", addDate, dateLayout, err)
			}
		}

		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		trade, err := a.svc.CreateTrade(args[0], quantity, price, date)
		if err != nil {
			return err
		}

		fmt.Printf("Recorded trade #%d: %s qty=%v price=%v date=%s\n",
			trade.ID, trade.Symbol, trade.Quantity, trade.Price, trade.Date.Format(dateLayout))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "trade date as \"YYYY-MM-DD HH:MM\" (defaults to now)")
}
