package backtest

import (
	"context"
	"log"
	"sort"
	"time"

	"tradewatch/market"
)

// MultiResult is one (symbol, timeframe, trailing period) evaluation.
type MultiResult struct {
	Symbol     string
	Timeframe  string
	Period     string
	Score      float64
	Confidence float64
	Alert      bool
}

// GroupStats summarizes the multi-period scan per (timeframe, period)
// cell.
type GroupStats struct {
	Timeframe     string
	Period        string
	Total         int
	Alerts        int
	WinRate       float64
	AvgConfidence float64
}

// ScanMulti evaluates every symbol on every configured timeframe,
// restricted to each configured trailing period. Units with no data in
// the window are skipped; unit failures are logged and skipped, never
// fatal to the batch.
func (s *Scanner) ScanMulti(ctx context.Context, now time.Time) ([]MultiResult, error) {
	cfg := s.Config
	timeframes := cfg.Backtest.Timeframes
	if len(timeframes) == 0 {
		timeframes = []string{cfg.Timeframe}
	}

	var results []MultiResult

	for _, symbol := range cfg.Symbols {
		for _, tf := range timeframes {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			default:
			}

			full, err := s.Provider.GetOHLCV(ctx, symbol, tf)
			if err != nil {
				log.Printf("[WARN] backtest: %s %s: %v", symbol, tf, err)
				continue
			}

			for _, period := range cfg.Backtest.Periods {
				since := now.AddDate(0, 0, -period.Days)
				window := full.Since(since)
				if window.Len() == 0 {
					log.Printf("[INFO] backtest: no recent data for %s %s %s", symbol, tf, period.Label)
					continue
				}

				// Evaluate on a fresh series over the same bars so each
				// period window gets its own indicator columns.
				score, confidence, err := Evaluate(cloneBars(window), cfg.Indicators)
				if err != nil {
					log.Printf("[WARN] backtest: %s %s %s: %v", symbol, tf, period.Label, err)
					continue
				}

				results = append(results, MultiResult{
					Symbol:     symbol,
					Timeframe:  tf,
					Period:     period.Label,
					Score:      score,
					Confidence: confidence,
					Alert:      confidence >= cfg.Alerts.ConfidenceThreshold,
				})
			}
		}
	}

	return results, nil
}

// cloneBars wraps the same read-only bars in a fresh series with no
// derived columns, so independent evaluations never share column state.
func cloneBars(s *market.Series) *market.Series {
	return market.NewSeries(s.Symbol, s.Bars())
}

// SummarizeMulti groups multi-scan results by timeframe and period.
func SummarizeMulti(results []MultiResult) []GroupStats {
	type key struct{ tf, period string }
	groups := make(map[key]*GroupStats)
	var order []key

	for _, r := range results {
		k := key{r.Timeframe, r.Period}
		g, ok := groups[k]
		if !ok {
			g = &GroupStats{Timeframe: r.Timeframe, Period: r.Period}
			groups[k] = g
			order = append(order, k)
		}
		g.Total++
		if r.Alert {
			g.Alerts++
		}
		g.AvgConfidence += r.Confidence
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].tf != order[j].tf {
			return order[i].tf < order[j].tf
		}
		return order[i].period < order[j].period
	})

	out := make([]GroupStats, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if g.Total > 0 {
			g.WinRate = float64(g.Alerts) / float64(g.Total)
			g.AvgConfidence /= float64(g.Total)
		}
		out = append(out, *g)
	}
	return out
}
