package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tradewatch/backtest"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Evaluate every configured symbol once and report alerts",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := newJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	scanner := &backtest.Scanner{
		Provider: newProvider(cfg),
		Journal:  j,
		Config:   cfg,
	}

	results, sum, err := scanner.Scan(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Scan summary ===\n")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("! %-10s error: %v\n", r.Symbol, r.Err)
			continue
		}
		flag := "-"
		if r.Alert {
			flag = "*"
		}
		fmt.Printf("%s %-10s score=%6.2f  conf=%5.1f%%\n",
			flag, r.Symbol, r.Score, r.Confidence*100)
	}
	fmt.Printf("\nTotal symbols: %d, Alerts triggered: %d\n", sum.Total, sum.Alerts)
	return nil
}
