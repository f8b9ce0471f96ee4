package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trade by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid trade id %q: %w", args[0], err)
		}

		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		removed, err := a.svc.DeleteTrade(uint(id))
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("No trade with id %d.\n", id)
			return nil
		}
		fmt.Printf("Deleted trade %d.\n", id)
		return nil
	},
}
