// Package config loads and validates the application configuration.
// Validation fails fast at this boundary; the core packages assume
// already-validated input.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tradewatch/indicators"
)

// Config is the complete, immutable-per-invocation configuration.
type Config struct {
	Symbols    []string          `json:"symbols" yaml:"symbols"`
	Timeframe  string            `json:"timeframe" yaml:"timeframe"`
	Indicators indicators.Params `json:"indicators" yaml:"indicators"`
	Alerts     AlertsConfig      `json:"alerts" yaml:"alerts"`

	PaperInitialCash float64 `json:"paper_initial_cash,omitempty" yaml:"paper_initial_cash,omitempty"`

	Backtest BacktestConfig `json:"backtest,omitempty" yaml:"backtest,omitempty"`
	Optimize OptimizeConfig `json:"optimize,omitempty" yaml:"optimize,omitempty"`
	Journal  JournalConfig  `json:"journal,omitempty" yaml:"journal,omitempty"`
	Telegram TelegramConfig `json:"telegram,omitempty" yaml:"telegram,omitempty"`
	Data     DataConfig     `json:"data,omitempty" yaml:"data,omitempty"`
}

// AlertsConfig holds the two alerting thresholds. The confidence
// threshold gates scan alerts (normalized score); the score threshold
// drives paper-trading decisions (raw score).
type AlertsConfig struct {
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`
	ScoreThreshold      float64 `json:"score_threshold" yaml:"score_threshold"`
}

// Period is a trailing evaluation window for multi-period backtests.
type Period struct {
	Label string `json:"label" yaml:"label"`
	Days  int    `json:"days" yaml:"days"`
}

// BacktestConfig parameterizes the multi-period scan.
type BacktestConfig struct {
	Timeframes []string `json:"timeframes,omitempty" yaml:"timeframes,omitempty"`
	Periods    []Period `json:"periods,omitempty" yaml:"periods,omitempty"`
}

// OptimizeConfig defines the parameter grid for sweeps.
type OptimizeConfig struct {
	RSI       []int     `json:"rsi,omitempty" yaml:"rsi,omitempty"`
	EMAPairs  [][]int   `json:"ema_pairs,omitempty" yaml:"ema_pairs,omitempty"`
	BBWindows []int     `json:"bb_windows,omitempty" yaml:"bb_windows,omitempty"`
	BBStds    []float64 `json:"bb_stds,omitempty" yaml:"bb_stds,omitempty"`
	Workers   int       `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// JournalConfig selects the persistence backend.
type JournalConfig struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"` // "sqlite", "csv" or "none"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	AlertsFile string `json:"alerts_file,omitempty" yaml:"alerts_file,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// TelegramConfig holds notification credentials. Secrets come from the
// environment in preference to the file.
type TelegramConfig struct {
	BotToken string `json:"bot_token,omitempty" yaml:"bot_token,omitempty"`
	ChatID   string `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
	Proxy    string `json:"proxy,omitempty" yaml:"proxy,omitempty"`
}

// DataConfig selects the market data provider.
type DataConfig struct {
	Source string `json:"source,omitempty" yaml:"source,omitempty"` // "csv" or "yahoo"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`       // csv: directory of bar files
}

// Default mirrors the stock configuration shipped with the original
// watchlist.
func Default() *Config {
	return &Config{
		Symbols:    []string{"EURUSD=X", "GBPUSD=X", "USDJPY=X", "BTC-USD"},
		Timeframe:  "1h",
		Indicators: indicators.Default(),
		Alerts: AlertsConfig{
			ConfidenceThreshold: 0.75,
			ScoreThreshold:      2.0,
		},
		PaperInitialCash: 100000,
		Backtest: BacktestConfig{
			Timeframes: []string{"1h", "1d"},
			Periods: []Period{
				{Label: "7d", Days: 7},
				{Label: "30d", Days: 30},
				{Label: "90d", Days: 90},
			},
		},
		Optimize: OptimizeConfig{
			RSI:       []int{7, 14, 21},
			EMAPairs:  [][]int{{10, 20}, {20, 50}, {50, 100}},
			BBWindows: []int{10, 20, 30},
			BBStds:    []float64{1.0, 2.0, 3.0},
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "data/alerts.db",
		},
		Data: DataConfig{
			Source: "yahoo",
		},
	}
}

// Load reads configuration from a file (YAML first, JSON fallback) and
// applies environment overrides for secrets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, format chosen by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Telegram.Proxy = v
	}
}

// Validate checks the configuration before anything enters the core.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must be a non-empty list")
	}
	if c.Timeframe == "" {
		return fmt.Errorf("timeframe is required")
	}
	if err := c.Indicators.Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if c.Alerts.ConfidenceThreshold < 0 || c.Alerts.ConfidenceThreshold > 1 {
		return fmt.Errorf("alerts.confidence_threshold must be in [0,1], got %g", c.Alerts.ConfidenceThreshold)
	}
	if c.PaperInitialCash < 0 {
		return fmt.Errorf("paper_initial_cash must be non-negative, got %g", c.PaperInitialCash)
	}
	for _, p := range c.Backtest.Periods {
		if p.Days <= 0 {
			return fmt.Errorf("backtest period %q: days must be positive", p.Label)
		}
	}
	for _, pair := range c.Optimize.EMAPairs {
		if len(pair) != 2 {
			return fmt.Errorf("optimize.ema_pairs entries must have exactly two spans, got %v", pair)
		}
		if pair[0] <= 0 || pair[1] <= 0 {
			return fmt.Errorf("optimize.ema_pairs spans must be positive, got %v", pair)
		}
	}
	switch c.Journal.Type {
	case "", "none", "sqlite", "csv":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none', got %q", c.Journal.Type)
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for sqlite journal")
	}
	if c.Journal.Type == "csv" &&
		(c.Journal.AlertsFile == "" || c.Journal.TradesFile == "" || c.Journal.EquityFile == "") {
		return fmt.Errorf("journal alerts_file, trades_file and equity_file required for csv journal")
	}
	switch c.Data.Source {
	case "", "yahoo":
	case "csv":
		if c.Data.Dir == "" {
			return fmt.Errorf("data.dir required for csv data source")
		}
	default:
		return fmt.Errorf("data.source must be 'csv' or 'yahoo', got %q", c.Data.Source)
	}
	return nil
}
