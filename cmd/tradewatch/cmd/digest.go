package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradewatch/digest"
	"tradewatch/journal"
	"tradewatch/notify"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Summarize the last 24 hours of alerts",
	RunE:  runDigest,
}

var digestSend bool

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().BoolVar(&digestSend, "send", false, "send the digest via Telegram")
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Type != "sqlite" {
		return fmt.Errorf("digest needs the sqlite journal, configured type is %q", cfg.Journal.Type)
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	now := time.Now().UTC()
	alerts, err := j.ListAlertsSince(now.Add(-digest.Window))
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}

	text := digest.Generate(alerts, now)
	fmt.Println(text)

	if !digestSend {
		return nil
	}
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		return fmt.Errorf("telegram bot_token and chat_id must be configured to send")
	}
	tg := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Proxy)
	return tg.SendWithRetry(context.Background(), text, 3)
}
