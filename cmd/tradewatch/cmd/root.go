// Package cmd wires the CLI: scan, multi, paper, optimize and digest
// commands over a shared configuration.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tradewatch/config"
	"tradewatch/feed"
	"tradewatch/journal"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "tradewatch",
	Short: "Score symbols on technical signals and paper-trade the result",
	Long: `tradewatch ingests OHLCV series, derives indicators and candlestick
patterns, combines them into a signed confidence score, and drives a
simulated trading loop with the result.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (YAML or JSON); defaults apply when omitted")
}

// Execute runs the CLI. A .env file, when present, fills in secrets
// like the Telegram token before config loading.
func Execute() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

func newProvider(cfg *config.Config) feed.Provider {
	if cfg.Data.Source == "csv" {
		return feed.NewCSV(cfg.Data.Dir)
	}
	return feed.NewYahoo(cfg.Telegram.Proxy)
}

func newJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(cfg.Journal.AlertsFile, cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "", "none":
		return journal.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}
