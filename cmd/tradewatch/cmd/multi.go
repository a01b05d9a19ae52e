package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradewatch/backtest"
)

var multiCmd = &cobra.Command{
	Use:   "multi",
	Short: "Backtest every symbol across timeframes and trailing periods",
	RunE:  runMulti,
}

func init() {
	rootCmd.AddCommand(multiCmd)
}

func runMulti(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scanner := &backtest.Scanner{
		Provider: newProvider(cfg),
		Config:   cfg,
	}

	results, err := scanner.ScanMulti(context.Background(), time.Now().UTC())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No backtest results.")
		return nil
	}

	fmt.Printf("\n=== Detailed results ===\n")
	for _, r := range results {
		flag := "-"
		if r.Alert {
			flag = "*"
		}
		fmt.Printf("%s %-10s %-4s %-4s score=%6.2f  conf=%5.1f%%\n",
			flag, r.Symbol, r.Timeframe, r.Period, r.Score, r.Confidence*100)
	}

	fmt.Printf("\n=== Summary by timeframe/period ===\n")
	for _, g := range backtest.SummarizeMulti(results) {
		fmt.Printf("%-4s %-4s total=%3d alerts=%3d win_rate=%5.1f%% avg_conf=%5.1f%%\n",
			g.Timeframe, g.Period, g.Total, g.Alerts, g.WinRate*100, g.AvgConfidence*100)
	}
	return nil
}
