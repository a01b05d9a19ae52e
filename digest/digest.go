// Package digest builds the daily alert summary message. It produces
// text only; delivery belongs to the notify package.
package digest

import (
	"fmt"
	"strings"
	"time"

	"tradewatch/journal"
)

// Empty is returned when the window holds no alerts.
const Empty = "No alerts in the last 24 hours."

// Window is how far back the digest looks.
const Window = 24 * time.Hour

// Generate formats the alerts of the trailing window into a summary:
// a dated header, alert count with the positive-score win rate, then
// one line per alert.
func Generate(alerts []journal.AlertRecord, now time.Time) string {
	if len(alerts) == 0 {
		return Empty
	}

	total := len(alerts)
	wins := 0
	for _, a := range alerts {
		if a.Score > 0 {
			wins++
		}
	}
	winRate := 100 * float64(wins) / float64(total)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Daily digest - %s\n", now.UTC().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%d alerts | Win rate: %.1f%%\n\n", total, winRate))
	for i, a := range alerts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s - %s: %.2f",
			a.Time.UTC().Format("2006-01-02 15:04:05"), a.Symbol, a.Score))
	}
	return b.String()
}
