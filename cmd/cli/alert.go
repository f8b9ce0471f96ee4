package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	alertWatch    bool
	alertInterval time.Duration
)

var alertCmd = &cobra.Command{
	Use:   "alert <symbol> <threshold>",
	Short: "Set a price alert and check it",
	Long: `Set a threshold alert for a symbol and evaluate it against the live
price. Alert rules live in memory only, so a one-shot invocation checks the
rule once and exits; with --watch the rule is re-checked on an interval until
interrupted. Alerts are level-triggered: a rule keeps firing on every check
while the price stays at or above its threshold.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", args[1], err)
		}
		if threshold <= 0 {
			return fmt.Errorf("threshold must be positive, got %v", threshold)
		}

		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		a.svc.SetPriceAlert(args[0], threshold)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			sigchan := make(chan os.Signal, 1)
			signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
			<-sigchan
			cancel()
		}()

		if err := runCheck(ctx, a); err != nil {
			return err
		}
		if !alertWatch {
			return nil
		}

		ticker := time.NewTicker(alertInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := runCheck(ctx, a); err != nil {
					return err
				}
			}
		}
	},
}

func runCheck(ctx context.Context, a *app) error {
	messages, err := a.svc.CheckAlerts(ctx)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		fmt.Println("No alerts triggered.")
		return nil
	}
	for _, msg := range messages {
		fmt.Println("ALERT:", msg)
	}
	return nil
}

func init() {
	alertCmd.Flags().BoolVar(&alertWatch, "watch", false, "keep re-checking the alert until interrupted")
	alertCmd.Flags().DurationVar(&alertInterval, "interval", time.Minute, "re-check interval with --watch")
}
