package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tradewatch/indicators"
	"tradewatch/journal"
	"tradewatch/performance"
	"tradewatch/sim"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Run the paper-trading simulation over one symbol's history",
	RunE:  runPaper,
}

var (
	paperSymbol string
	paperCash   float64
)

func init() {
	rootCmd.AddCommand(paperCmd)
	paperCmd.Flags().StringVarP(&paperSymbol, "symbol", "s", "", "symbol to simulate (default: first configured symbol)")
	paperCmd.Flags().Float64Var(&paperCash, "cash", 0, "starting cash (default: paper_initial_cash from config)")
}

func runPaper(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	symbol := paperSymbol
	if symbol == "" {
		symbol = cfg.Symbols[0]
	}
	cash := paperCash
	if cash == 0 {
		cash = cfg.PaperInitialCash
	}
	if cash == 0 {
		cash = 100000
	}

	ctx := context.Background()

	series, err := newProvider(cfg).GetOHLCV(ctx, symbol, cfg.Timeframe)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if err := indicators.Compute(series, cfg.Indicators); err != nil {
		return err
	}

	history, err := sim.RunPaper(ctx, series, sim.PaperConfig{
		InitialCash:    cash,
		ScoreThreshold: cfg.Alerts.ScoreThreshold,
	})
	if err != nil {
		return err
	}

	j, err := newJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()
	if err := journal.RecordHistory(j, symbol, history); err != nil {
		return fmt.Errorf("journal history: %w", err)
	}

	trades := history.Trades()
	fmt.Printf("\n=== Paper trading: %s (%d bars, %d trades) ===\n",
		symbol, series.Len(), len(trades))
	for _, t := range trades {
		if t.Action == sim.Sell {
			fmt.Printf("%s %-4s price=%.5f qty=%.4f cash=%.2f pnl=%+.2f\n",
				t.Time.Format("2006-01-02 15:04"), t.Action, t.Price, t.Quantity, t.CashAfter, t.PnL)
			continue
		}
		fmt.Printf("%s %-4s price=%.5f qty=%.4f cash=%.2f\n",
			t.Time.Format("2006-01-02 15:04"), t.Action, t.Price, t.Quantity, t.CashAfter)
	}

	returns := history.Returns()
	if len(returns) == 0 {
		fmt.Println("\nNot enough equity history for performance stats.")
		return nil
	}
	_, stats, err := performance.Compute(returns)
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal return:  %+.2f%%\n", stats.TotalReturn*100)
	fmt.Printf("Annual return: %+.2f%%\n", stats.AnnualReturn*100)
	fmt.Printf("Annual vol:    %.2f%%\n", stats.AnnualVol*100)
	fmt.Printf("Sharpe:        %.2f\n", stats.Sharpe)
	fmt.Printf("Max drawdown:  %.2f%%\n", stats.MaxDrawdown*100)
	return nil
}
