package sim

import (
	"context"
	"log"
	"math"

	"tradewatch/market"
	"tradewatch/patterns"
	"tradewatch/scoring"
)

// PaperConfig parameterizes a paper-trading run.
type PaperConfig struct {
	InitialCash    float64
	ScoreThreshold float64
	Weights        map[string]float64 // optional overrides for scoring
	Sizer          Sizer              // nil means FullCash
}

// RunPaper walks the series chronologically and trades on the raw
// score: BUY when score >= threshold and flat, SELL when score <
// threshold and long. Every processed bar records an equity snapshot.
// The series must already carry indicator columns.
//
// Bar policies:
//   - A bar with a non-finite close is skipped for signal purposes but
//     still records equity at the last known valid price. Bars before
//     any valid price are skipped entirely.
//   - A per-bar evaluation failure is isolated: the bar records equity
//     and the walk continues, treating it as a no-signal bar.
//
// Cancellation is checked between bars; on cancellation the history so
// far is returned along with the context error.
func RunPaper(ctx context.Context, s *market.Series, cfg PaperConfig) (History, error) {
	port := NewPortfolioWithSizer(cfg.InitialCash, cfg.Sizer)
	if cfg.Sizer == nil {
		port.sizer = FullCash{}
	}

	lastValid := math.NaN()

	for i := 0; i < s.Len(); i++ {
		select {
		case <-ctx.Done():
			return port.History, ctx.Err()
		default:
		}

		bar := s.Bar(i)
		price := bar.Close

		if math.IsNaN(price) || math.IsInf(price, 0) {
			if !math.IsNaN(lastValid) {
				port.RecordEquity(bar.Time, lastValid)
			}
			continue
		}
		lastValid = price

		score, ok := evaluate(s.Prefix(i+1), cfg.Weights)
		if !ok {
			port.RecordEquity(bar.Time, price)
			continue
		}

		if score >= cfg.ScoreThreshold && port.Flat() {
			port.Buy(price, bar.Time)
		} else if score < cfg.ScoreThreshold && !port.Flat() {
			port.Sell(price, bar.Time)
		}

		port.RecordEquity(bar.Time, price)
	}

	return port.History, nil
}

// evaluate scores the trailing state of the prefix series, isolating
// any panic from an edge case to this single bar.
func evaluate(prefix *market.Series, weights map[string]float64) (score float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] sim: evaluation failed on bar, skipping signal: %v", r)
			score, ok = 0, false
		}
	}()
	flags := patterns.Detect(prefix)
	return scoring.Score(prefix, flags, weights), true
}
