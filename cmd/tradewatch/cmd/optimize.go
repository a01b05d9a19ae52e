package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tradewatch/backtest"
	"tradewatch/journal"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Grid-search indicator parameters by historical win rate",
	RunE:  runOptimize,
}

var optimizeTop int

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().IntVar(&optimizeTop, "top", 10, "number of parameter sets to print")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scanner := &backtest.Scanner{
		Provider: newProvider(cfg),
		Journal:  journal.Noop{},
		Config:   cfg,
	}

	results, err := scanner.Optimize(context.Background())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No parameter sets evaluated.")
		return nil
	}

	top := optimizeTop
	if top > len(results) {
		top = len(results)
	}
	fmt.Printf("=== Top %d parameter sets by win rate ===\n", top)
	for i, r := range results[:top] {
		fmt.Printf("%2d. rsi=%-3d ema=%d/%-3d bb=%d/%.1f  win rate %.1f%%\n",
			i+1, r.Params.RSI, r.Params.EMAShort, r.Params.EMALong,
			r.Params.BBWindow, r.Params.BBStd, r.WinRate*100)
	}
	return nil
}
