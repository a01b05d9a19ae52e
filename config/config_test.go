package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Symbols)
	assert.Equal(t, "1h", cfg.Timeframe)
	assert.InDelta(t, 0.75, cfg.Alerts.ConfidenceThreshold, 1e-9)
	assert.InDelta(t, 2.0, cfg.Alerts.ScoreThreshold, 1e-9)
	assert.InDelta(t, 100000, cfg.PaperInitialCash, 1e-9)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yaml", `
symbols: ["BTC-USD"]
timeframe: 4h
indicators:
  rsi: 7
  ema: [10, 20]
  bollinger:
    window: 10
    std: 1.5
alerts:
  confidence_threshold: 0.5
  score_threshold: 1.0
journal:
  type: none
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC-USD"}, cfg.Symbols)
	assert.Equal(t, "4h", cfg.Timeframe)
	assert.Equal(t, 7, cfg.Indicators.RSI)
	assert.Equal(t, []int{10, 20}, cfg.Indicators.EMA)
	assert.InDelta(t, 1.5, cfg.Indicators.Bollinger.Std, 1e-9)
	assert.InDelta(t, 0.5, cfg.Alerts.ConfidenceThreshold, 1e-9)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.json", `{
  "symbols": ["EURUSD=X"],
  "timeframe": "1d",
  "indicators": {"rsi": 14, "ema": [20, 50], "bollinger": {"window": 20, "std": 2}},
  "alerts": {"confidence_threshold": 0.75, "score_threshold": 2},
  "journal": {"type": "none"}
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"EURUSD=X"}, cfg.Symbols)
	assert.Equal(t, "1d", cfg.Timeframe)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadGarbage(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yaml", "symbols: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.yaml", `
symbols: []
timeframe: 1h
indicators: {rsi: 14, ema: [20], bollinger: {window: 20, std: 2}}
alerts: {confidence_threshold: 0.5, score_threshold: 1}
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok-from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "chat-from-env")

	path := writeConfig(t, "config.yaml", `
symbols: ["BTC-USD"]
timeframe: 1h
indicators: {rsi: 14, ema: [20, 50], bollinger: {window: 20, std: 2}}
alerts: {confidence_threshold: 0.75, score_threshold: 2}
telegram:
  bot_token: tok-from-file
  chat_id: chat-from-file
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-from-env", cfg.Telegram.BotToken)
	assert.Equal(t, "chat-from-env", cfg.Telegram.ChatID)
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no symbols", func(c *Config) { c.Symbols = nil }},
		{"no timeframe", func(c *Config) { c.Timeframe = "" }},
		{"bad rsi", func(c *Config) { c.Indicators.RSI = 0 }},
		{"confidence above one", func(c *Config) { c.Alerts.ConfidenceThreshold = 1.5 }},
		{"negative cash", func(c *Config) { c.PaperInitialCash = -1 }},
		{"zero-day period", func(c *Config) { c.Backtest.Periods = []Period{{Label: "x", Days: 0}} }},
		{"ema pair arity", func(c *Config) { c.Optimize.EMAPairs = [][]int{{10}} }},
		{"ema pair sign", func(c *Config) { c.Optimize.EMAPairs = [][]int{{-1, 20}} }},
		{"unknown journal", func(c *Config) { c.Journal.Type = "mongo" }},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
		{"csv journal without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"unknown data source", func(c *Config) { c.Data.Source = "ftp" }},
		{"csv source without dir", func(c *Config) { c.Data = DataConfig{Source: "csv"} }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Default().SaveToFile(path))

		cfg, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, Default().Symbols, cfg.Symbols, name)
		assert.Equal(t, Default().Indicators, cfg.Indicators, name)
	}
}
